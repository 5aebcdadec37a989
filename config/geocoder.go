package config

import "time"

type GeocoderConfig struct {
	APIKey   string        `json:"api_key" yaml:"api_key"`
	Endpoint string        `json:"endpoint" yaml:"endpoint"`
	Language string        `json:"language" yaml:"language"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

func (g *GeocoderConfig) applyDefaults() {
	if g.Endpoint == "" {
		g.Endpoint = "https://maps.googleapis.com/maps/api/geocode/json"
	}
	if g.Language == "" {
		g.Language = "en"
	}
	if g.Timeout == 0 {
		g.Timeout = 10 * time.Second
	}
	if g.CacheTTL == 0 {
		g.CacheTTL = 24 * time.Hour
	}
}

func ProvideGeocoderConfig(cfg *Config) *GeocoderConfig {
	return cfg.Geocoder
}
