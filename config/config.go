package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App       *App             `json:"app" yaml:"app"`
	Server    *Server          `json:"server" yaml:"server"`
	Log       *Log             `json:"log" yaml:"log"`
	Storage   *Storage         `json:"storage" yaml:"storage"`
	MySQL     *MySQL           `json:"mysql" yaml:"mysql"`
	Oss       *OssConfig       `json:"oss" yaml:"oss"`
	Redis     *Redis           `json:"redis" yaml:"redis"`
	OpenAI    *OpenAIConfig    `json:"openai" yaml:"openai"`
	Geocoder  *GeocoderConfig  `json:"geocoder" yaml:"geocoder"`
	Catalog   *CatalogConfig   `json:"catalog" yaml:"catalog"`
	Thumbnail *ThumbnailConfig `json:"thumbnail" yaml:"thumbnail"`
	Map       *MapConfig       `json:"map" yaml:"map"`
	Jwt       *Jwt             `json:"jwt" yaml:"jwt"`
}

type Server struct {
	Http            int           `json:"http" yaml:"http"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// New 读取配置文件，文件不存在时使用默认配置
func New(filename string) (*Config, error) {
	var conf Config

	content, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(content, &conf); err != nil {
			return nil, fmt.Errorf("解析 %s 读取错误: %w", filename, err)
		}
	case os.IsNotExist(err):
		// 允许只依赖环境变量启动
	default:
		return nil, err
	}

	conf.applyDefaults()
	conf.applyEnv()
	return &conf, nil
}

// MustNew 与 New 相同，出错时 panic
func MustNew(filename string) *Config {
	conf, err := New(filename)
	if err != nil {
		panic(err)
	}
	return conf
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}

func (c *Config) applyDefaults() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 3 * time.Second
	}
	if c.Log == nil {
		c.Log = &Log{}
	}
	c.Log.applyDefaults()
	if c.Storage == nil {
		c.Storage = &Storage{}
	}
	c.Storage.applyDefaults()
	if c.MySQL == nil {
		c.MySQL = &MySQL{}
	}
	if c.Oss == nil {
		c.Oss = &OssConfig{}
	}
	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.OpenAI == nil {
		c.OpenAI = &OpenAIConfig{}
	}
	c.OpenAI.applyDefaults()
	if c.Geocoder == nil {
		c.Geocoder = &GeocoderConfig{}
	}
	c.Geocoder.applyDefaults()
	if c.Catalog == nil {
		c.Catalog = &CatalogConfig{}
	}
	if c.Catalog.LoadConcurrency <= 0 {
		c.Catalog.LoadConcurrency = 8
	}
	if c.Thumbnail == nil {
		c.Thumbnail = &ThumbnailConfig{}
	}
	if c.Thumbnail.CacheSize <= 0 {
		c.Thumbnail.CacheSize = 256
	}
	if c.Thumbnail.DefaultSize <= 0 {
		c.Thumbnail.DefaultSize = 320
	}
	if c.Map == nil {
		c.Map = &MapConfig{}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.Expire == 0 {
		c.Jwt.Expire = 30 * 24 * time.Hour
	}
}

// applyEnv 密钥类配置允许通过环境变量覆盖
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("GOOGLE_MAPS_API_KEY"); v != "" {
		c.Geocoder.APIKey = v
	}
	if v := os.Getenv("OSS_ACCESS_KEY_ID"); v != "" {
		c.Oss.AccessKeyID = v
	}
	if v := os.Getenv("OSS_ACCESS_KEY_SECRET"); v != "" {
		c.Oss.AccessKeySecret = v
	}
	if v := os.Getenv("FOODNOTE_JWT_SECRET"); v != "" {
		c.Jwt.Secret = v
	}
}

// Masked 返回隐藏密钥后的副本，用于打印
func (c *Config) Masked() Config {
	out := *c
	oai := *c.OpenAI
	oai.APIKey = mask(oai.APIKey)
	out.OpenAI = &oai
	geo := *c.Geocoder
	geo.APIKey = mask(geo.APIKey)
	out.Geocoder = &geo
	oss := *c.Oss
	oss.AccessKeySecret = mask(oss.AccessKeySecret)
	out.Oss = &oss
	jwt := *c.Jwt
	jwt.Secret = mask(jwt.Secret)
	out.Jwt = &jwt
	mysql := *c.MySQL
	mysql.Password = mask(mysql.Password)
	out.MySQL = &mysql
	redis := *c.Redis
	redis.Password = mask(redis.Password)
	out.Redis = &redis
	return out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "******"
}
