package app

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr      string        `yaml:"listen"`
	DBDriver        string        `yaml:"db_driver"`
	DBPath          string        `yaml:"db"`
	MaxConns        int           `yaml:"max_conns"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	LogLevel        string        `yaml:"log_level"`
}

const (
	DefaultListenAddr      = "localhost:10000"
	DefaultDBDriver        = "sqlite"
	DefaultShutdownTimeout = 10 * time.Second
)

// LoadConfig 读取 YAML 配置文件；未知字段视为错误，避免拼写错误被静默忽略。
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置文件失败：%w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("解析配置文件 %s 失败：%w", path, err)
	}
	return cfg, nil
}

// Merge 用 override 中非零的字段覆盖 c。
func (c Config) Merge(override Config) Config {
	if override.ListenAddr != "" {
		c.ListenAddr = override.ListenAddr
	}
	if override.DBDriver != "" {
		c.DBDriver = override.DBDriver
	}
	if override.DBPath != "" {
		c.DBPath = override.DBPath
	}
	if override.MaxConns != 0 {
		c.MaxConns = override.MaxConns
	}
	if override.ShutdownTimeout != 0 {
		c.ShutdownTimeout = override.ShutdownTimeout
	}
	if override.LogLevel != "" {
		c.LogLevel = override.LogLevel
	}
	return c
}

func (c *Config) setDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.DBDriver == "" {
		c.DBDriver = DefaultDBDriver
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
}
