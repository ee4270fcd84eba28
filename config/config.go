// config/config.go - 配置管理文件
package config

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix 环境变量前缀，例如 MADRESE_JWT_SECRET 覆盖 jwt.secret
const EnvPrefix = "MADRESE_"

var (
	Conf *AppConfig
	once sync.Once
	k    *koanf.Koanf
)

// Load 加载配置文件
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// 首先加载 .env 文件到环境变量
		if envErr := godotenv.Load(); envErr != nil {
			log.Printf("警告: 无法加载 .env 文件: %v", envErr)
		}

		k, Conf, err = load(configPath)
	})

	return err
}

func load(configPath string) (*koanf.Koanf, *AppConfig, error) {
	ko := koanf.New(".")

	// 先加载配置文件
	if err := ko.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, nil, fmt.Errorf("加载配置文件失败: %w", err)
	}

	// 再加载环境变量（覆盖配置文件）
	if err := ko.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, nil, fmt.Errorf("加载环境变量失败: %w", err)
	}

	// 解析到结构体
	conf := &AppConfig{}
	if err := ko.Unmarshal("", conf); err != nil {
		return nil, nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, nil, err
	}

	return ko, conf, nil
}

// envKey maps MADRESE_SMTP_HOST to smtp.host. Keys whose names contain an
// underscore are written with a double underscore: MADRESE_SESSION_COOKIE__NAME.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	s = strings.ReplaceAll(s, "__", "\x00")
	s = strings.ReplaceAll(s, "_", ".")
	return strings.ReplaceAll(s, "\x00", "_")
}

// Validate 检查必须的配置项
func (c *AppConfig) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret 未配置")
	}
	switch c.SMS.Driver {
	case "", "log":
	case "rabbitmq":
		if c.RabbitMQ.URL == "" {
			return fmt.Errorf("sms.driver 为 rabbitmq 时必须配置 rabbitmq.url")
		}
	default:
		return fmt.Errorf("未知的 sms.driver: %s", c.SMS.Driver)
	}
	return nil
}

// MustLoad 加载配置，失败则 panic
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
}
