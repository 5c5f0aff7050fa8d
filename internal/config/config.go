package config

import (
	"os"
	"strconv"
	"strings"

	"Volunteer_Hub/internal/pkg"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	MySQLDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AccessSecret  string
	RefreshSecret string

	UploadDir string

	SMTP pkg.SMTPConfig

	KafkaBrokers []string
	KafkaTopic   string
}

// Load 读取 .env（缺失不报错）和环境变量，缺省值面向本地开发
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:      getenv("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/volunteer_hub?charset=utf8mb4&parseTime=True"),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),
		AccessSecret:  getenv("JWT_ACCESS_SECRET", ""),
		RefreshSecret: getenv("JWT_REFRESH_SECRET", ""),
		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
		SMTP: pkg.SMTPConfig{
			Host:     getenv("SMTP_HOST", ""),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: getenv("SMTP_USERNAME", ""),
			Password: getenv("SMTP_PASSWORD", ""),
			From:     getenv("SMTP_FROM", "NoReply <no-reply@example.com>"),
		},
		KafkaTopic: getenv("KAFKA_TOPIC", "moderation-audit"),
	}

	if brokers := getenv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	// jwt 密钥配置了就覆盖包内开发默认值
	if cfg.AccessSecret != "" {
		pkg.AccessSecret = []byte(cfg.AccessSecret)
	}
	if cfg.RefreshSecret != "" {
		pkg.RefreshSecret = []byte(cfg.RefreshSecret)
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
