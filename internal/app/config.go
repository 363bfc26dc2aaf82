package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/utils"
)

type Config struct {
	ServiceName       string
	Environment       string
	Addr              string
	JWTSecretKey      string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	AllowOrigins      []string
	DiscoveryCacheTTL time.Duration
}

// fileConfig is the optional yaml overlay. Anything set here wins over
// the environment.
type fileConfig struct {
	ServiceName            string   `yaml:"service_name"`
	Environment            string   `yaml:"environment"`
	Addr                   string   `yaml:"addr"`
	JWTSecretKey           string   `yaml:"jwt_secret_key"`
	AccessTokenTTLSeconds  int      `yaml:"access_token_ttl_seconds"`
	RefreshTokenTTLSeconds int      `yaml:"refresh_token_ttl_seconds"`
	AllowOrigins           []string `yaml:"allow_origins"`
	DiscoveryCacheSeconds  int      `yaml:"discovery_cache_seconds"`
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		ServiceName:       utils.GetEnv("SERVICE_NAME", "skillloop-backend"),
		Environment:       utils.GetEnv("ENVIRONMENT", "development"),
		Addr:              utils.GetEnv("HTTP_ADDR", ":8080"),
		JWTSecretKey:      utils.GetEnv("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:    time.Duration(utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600)) * time.Second,
		RefreshTokenTTL:   time.Duration(utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400)) * time.Second,
		AllowOrigins:      []string{"http://localhost:3000", "http://localhost:5173"},
		DiscoveryCacheTTL: time.Duration(utils.GetEnvAsInt("DISCOVERY_CACHE_TTL", 30)) * time.Second,
	}

	path := utils.GetEnv("CONFIG_FILE", "")
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if fc.ServiceName != "" {
		cfg.ServiceName = fc.ServiceName
	}
	if fc.Environment != "" {
		cfg.Environment = fc.Environment
	}
	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.JWTSecretKey != "" {
		cfg.JWTSecretKey = fc.JWTSecretKey
	}
	if fc.AccessTokenTTLSeconds > 0 {
		cfg.AccessTokenTTL = time.Duration(fc.AccessTokenTTLSeconds) * time.Second
	}
	if fc.RefreshTokenTTLSeconds > 0 {
		cfg.RefreshTokenTTL = time.Duration(fc.RefreshTokenTTLSeconds) * time.Second
	}
	if len(fc.AllowOrigins) > 0 {
		cfg.AllowOrigins = fc.AllowOrigins
	}
	if fc.DiscoveryCacheSeconds > 0 {
		cfg.DiscoveryCacheTTL = time.Duration(fc.DiscoveryCacheSeconds) * time.Second
	}
	log.Info("Config loaded", "config_file", path)
	return cfg, nil
}
