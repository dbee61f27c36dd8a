package config

import (
	"os"
	"time"
)

type App struct {
	Port        string
	Env         string
	DatabaseURL string
	JWTSecret   string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	AMQPURL     string
}

func Load() App {
	return App{
		Port:        getenv("APP_PORT", "8080"),
		Env:         getenv("APP_ENV", "dev"),
		DatabaseURL: getenv("DATABASE_URL", "renthub.db"),
		JWTSecret:   must("JWT_SECRET"),
		AccessTTL:   getduration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTTL:  getduration("REFRESH_TOKEN_TTL", 30*24*time.Hour),
		AMQPURL:     os.Getenv("AMQP_URL"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env " + k)
	}
	return v
}
