package config

import "time"

// Jwt Secret 为空时不校验 Authorization
type Jwt struct {
	Secret string        `json:"secret" yaml:"secret"`
	Expire time.Duration `json:"expire" yaml:"expire"`
}

func (j *Jwt) Enabled() bool {
	return j != nil && j.Secret != ""
}
