package config

// Log 日志配置，File 为空时只输出到 stdout
type Log struct {
	Level      string `json:"level" yaml:"level"`
	File       string `json:"file" yaml:"file"`
	MaxSize    int    `json:"max_size" yaml:"max_size"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	MaxAge     int    `json:"max_age" yaml:"max_age"`
	Compress   bool   `json:"compress" yaml:"compress"`
}

func (l *Log) applyDefaults() {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.MaxSize == 0 {
		l.MaxSize = 128
	}
	if l.MaxBackups == 0 {
		l.MaxBackups = 5
	}
	if l.MaxAge == 0 {
		l.MaxAge = 16
	}
}
