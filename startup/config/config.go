package config

import "os"

type Config struct {
	Port          string
	PadelDBHost   string
	PadelDBPort   string
	CacheHost     string
	CachePort     string
	JaegerAddress string
}

func NewConfig() *Config {
	return &Config{
		Port:          os.Getenv("PADEL_SERVICE_PORT"),
		PadelDBHost:   os.Getenv("PADEL_DB_HOST"),
		PadelDBPort:   os.Getenv("PADEL_DB_PORT"),
		CacheHost:     os.Getenv("PADEL_CACHE_HOST"),
		CachePort:     os.Getenv("PADEL_CACHE_PORT"),
		JaegerAddress: os.Getenv("JAEGER_ADDRESS"),
	}
}
