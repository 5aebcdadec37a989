package config

import "fmt"

const (
	StorageDriverFile   = "file"
	StorageDriverSQLite = "sqlite"
	StorageDriverMySQL  = "mysql"

	BlobLocal = "local"
	BlobOss   = "oss"
)

// Storage 目录存储或数据库存储
type Storage struct {
	Driver     string `json:"driver" yaml:"driver"`
	Dir        string `json:"dir" yaml:"dir"`
	Blob       string `json:"blob" yaml:"blob"`
	SQLitePath string `json:"sqlite_path" yaml:"sqlite_path"`
}

func (s *Storage) applyDefaults() {
	if s.Driver == "" {
		s.Driver = StorageDriverFile
	}
	if s.Dir == "" {
		s.Dir = "data"
	}
	if s.Blob == "" {
		s.Blob = BlobLocal
	}
	if s.SQLitePath == "" {
		s.SQLitePath = "data/foodnote.db"
	}
}

// MySQL MySQL配置信息
type MySQL struct {
	Host      string `json:"host" yaml:"host"`
	Port      int    `json:"port" yaml:"port"`
	Username  string `json:"username" yaml:"username"`
	Password  string `json:"password" yaml:"password"`
	Database  string `json:"database" yaml:"database"`
	Charset   string `json:"charset" yaml:"charset"`
	Collation string `json:"collation" yaml:"collation"`
}

func (m *MySQL) Dsn() string {
	charset := m.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	port := m.Port
	if port == 0 {
		port = 3306
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		m.Username, m.Password, m.Host, port, m.Database, charset)
}
