package config

type CatalogConfig struct {
	LoadConcurrency int `json:"load_concurrency" yaml:"load_concurrency"`
}

type ThumbnailConfig struct {
	CacheSize   int `json:"cache_size" yaml:"cache_size"`
	DefaultSize int `json:"default_size" yaml:"default_size"`
}

// MapConfig OmitUnplaced 为 true 时，坐标表里查不到的国家不出图钉
type MapConfig struct {
	OmitUnplaced bool `json:"omit_unplaced" yaml:"omit_unplaced"`
}
