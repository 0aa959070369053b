package app

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Host      string        `yaml:"host"`
	Port      int           `yaml:"port"`
	DB        string        `yaml:"db"`
	Namespace string        `yaml:"namespace"`
	Cookie    string        `yaml:"cookie"`
	Timeout   time.Duration `yaml:"timeout"`
}

const (
	DefaultHost      = "localhost"
	DefaultPort      = 10000
	DefaultDB        = "db1"
	DefaultNamespace = "ns1"
	DefaultTimeout   = 10 * time.Second
)

func DefaultConfig() Config {
	return Config{
		Host:      DefaultHost,
		Port:      DefaultPort,
		DB:        DefaultDB,
		Namespace: DefaultNamespace,
		Timeout:   DefaultTimeout,
	}
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LoadConfig 在 base 之上叠加 YAML 文件里出现的字段。
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("读取配置文件失败：%w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("解析配置文件 %s 失败：%w", path, err)
	}
	return cfg, nil
}
