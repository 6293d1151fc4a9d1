package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	RedisURL    string
	MetricsPort string
	WorkerCount int
	CacheTTL    time.Duration
	DefaultCEP  string
	RatePerMin  int // requisições por minuto, por mercado
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()
	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		WorkerCount: getEnvInt("WORKER_COUNT", 5),
		CacheTTL:    time.Duration(getEnvInt("CACHE_TTL_MIN", 30)) * time.Minute,
		DefaultCEP:  os.Getenv("DEFAULT_CEP"),
		RatePerMin:  getEnvInt("RATE_PER_MIN", 10),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}
