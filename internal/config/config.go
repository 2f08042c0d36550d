package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr            string        `yaml:"addr"`
	JWTSecret       string        `yaml:"jwt_secret"`
	APITimeout      time.Duration `yaml:"timeout"`
	DatabasePath    string        `yaml:"database_path"`
	SessionTTL      time.Duration `yaml:"session_ttl"`
	SecureCookies   bool          `yaml:"secure_cookies"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	WebDir          string        `yaml:"web_dir"`
	ExploreCacheTTL time.Duration `yaml:"explore_cache_ttl"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:            getEnv("SKILLSWAP_ADDR", ":8080"),
		JWTSecret:       getEnv("SKILLSWAP_JWT_SECRET", "supersecretkey"),
		APITimeout:      15 * time.Second,
		DatabasePath:    getEnv("SKILLSWAP_DATABASE_PATH", "skillswap.db"),
		SessionTTL:      7 * 24 * time.Hour,
		SecureCookies:   getEnvBool("SKILLSWAP_SECURE_COOKIES", false),
		CORSOrigins:     []string{getEnv("SKILLSWAP_FRONTEND_URL", "http://localhost:3000")},
		WebDir:          getEnv("SKILLSWAP_WEB_DIR", ""),
		ExploreCacheTTL: time.Minute,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}

	return def
}
