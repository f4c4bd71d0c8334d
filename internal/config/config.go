package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB      DBConfig     `mapstructure:"db"`
	JWT     JWTConfig    `mapstructure:"jwt"`
	Auth    AuthConfig   `mapstructure:"auth"`
	Quota   QuotaConfig  `mapstructure:"quota"`
	Ollama  OllamaConfig `mapstructure:"ollama"`
	Seed    SeedConfig   `mapstructure:"seed"`
	AppHost string       `mapstructure:"host"`
}

type DBConfig struct {
	Source string `mapstructure:"source"`
}

type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpiryMinutes int    `mapstructure:"expiry_minutes"`
}

// AuthConfig selects the credential scheme: "bearer" (JWT obtido via
// /auth/login) ou "basic" (e-mail e senha a cada requisição).
type AuthConfig struct {
	Scheme string `mapstructure:"scheme"`
}

type QuotaConfig struct {
	MonthlyLimit int `mapstructure:"monthly_limit"`
}

type OllamaConfig struct {
	URL            string `mapstructure:"url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type SeedConfig struct {
	Users []SeedUser `mapstructure:"users"`
}

type SeedUser struct {
	Email       string `mapstructure:"email"`
	Password    string `mapstructure:"password"`
	FullName    string `mapstructure:"full_name"`
	Institution string `mapstructure:"institution"`
}

func (c *JWTConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryMinutes) * time.Minute
}

func (c *OllamaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func Load() (*Config, error) {
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/configs")
	viper.SetConfigName("settings")
	viper.SetConfigType("yml")

	viper.SetDefault("auth.scheme", "bearer")
	viper.SetDefault("jwt.expiry_minutes", 60)
	viper.SetDefault("quota.monthly_limit", 100)
	viper.SetDefault("ollama.url", "http://localhost:11434")
	viper.SetDefault("ollama.model", "llama3.1")
	viper.SetDefault("ollama.timeout_seconds", 120)
	viper.SetDefault("host", ":8080")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
