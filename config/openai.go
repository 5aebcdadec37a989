package config

import "time"

// OpenAIConfig 菜品识别使用的视觉模型
type OpenAIConfig struct {
	APIKey  string        `json:"api_key" yaml:"api_key"`
	BaseURL string        `json:"base_url" yaml:"base_url"`
	Model   string        `json:"model" yaml:"model"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

func (o *OpenAIConfig) applyDefaults() {
	if o.BaseURL == "" {
		o.BaseURL = "https://api.openai.com/v1"
	}
	if o.Model == "" {
		o.Model = "gpt-4o-mini"
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
}

func ProvideOpenAIConfig(cfg *Config) *OpenAIConfig {
	return cfg.OpenAI
}
