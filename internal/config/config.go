package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env           string        `yaml:"env" env-default:"local"`
	Secret        string        `yaml:"secret" env:"APP_SECRET" env-required:"true"`
	TokenTTL      time.Duration `yaml:"token_ttl" env-default:"12h"`
	SnapshotsPath string        `yaml:"snapshots_path" env-default:"snapshots"`
	HTTPServer    HTTPServer    `yaml:"http_server"`
	DB            DB            `yaml:"db"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:80"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type DB struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     string `yaml:"port" env-default:"3306"`
	Username string `yaml:"username" env-default:"rtsp"`
	DBName   string `yaml:"dbname" env-default:"cameras_db"`
	Password string `yaml:"-" env:"MARIADB_PASSWORD"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		panic("CONFIG_PATH is required")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	return &cfg
}
