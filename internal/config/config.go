package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server   Server    `yaml:"server"`
	Session  Session   `yaml:"session"`
	Accounts []Account `yaml:"accounts"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Session struct {
	Secret         string `yaml:"secret"`
	TTLMinutes     int    `yaml:"ttlMinutes"`
	WarningMinutes int    `yaml:"warningMinutes"`
}

// Account is one entry of the static credential table. PasswordHash is a
// bcrypt hash; the hashpw command generates one.
type Account struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"passwordHash"`
	DisplayName  string `yaml:"displayName"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}
	if config.Session.TTLMinutes <= 0 {
		config.Session.TTLMinutes = 30
	}
	if config.Session.WarningMinutes <= 0 {
		config.Session.WarningMinutes = 5
	}

	return config, nil
}
