package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv          string        `yaml:"app_env"`
	HTTPAddr        string        `yaml:"http_addr"`
	MetricsAddr     string        `yaml:"metrics_addr"`
	RedisAddr       string        `yaml:"redis_addr"`
	RedisDB         int           `yaml:"redis_db"`
	RedisPass       string        `yaml:"redis_password"`
	GeminiBase      string        `yaml:"gemini_base_url"`
	GeminiKey       string        `yaml:"gemini_api_key"`
	GeminiModel     string        `yaml:"gemini_model"`
	GeminiRPS       int           `yaml:"gemini_rps"`
	GeminiTimeout   time.Duration `yaml:"gemini_timeout"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ExtractEntities bool          `yaml:"extract_entities"`
}

func defaults() Config {
	return Config{
		AppEnv:         "prod",
		HTTPAddr:       ":8080",
		GeminiBase:     "https://generativelanguage.googleapis.com/v1beta",
		GeminiModel:    "gemini-2.5-flash-lite",
		GeminiRPS:      5,
		GeminiTimeout:  60 * time.Second,
		CacheTTL:       15 * time.Minute,
		RequestTimeout: 90 * time.Second,
	}
}

// Load builds the config from defaults, then the YAML file named by
// REVIEWZ_CONFIG (if any), then environment variables.
func Load() Config {
	c := defaults()
	if path := os.Getenv("REVIEWZ_CONFIG"); path != "" {
		if err := loadFile(path, &c); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("config file")
		}
	}
	applyEnv(&c)
	if c.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty")
	}
	return c
}

func loadFile(path string, c *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(c *Config) {
	c.AppEnv = env("APP_ENV", c.AppEnv)
	c.HTTPAddr = env("HTTP_ADDR", c.HTTPAddr)
	c.MetricsAddr = env("METRICS_ADDR", c.MetricsAddr)
	c.RedisAddr = env("REDIS_ADDR", c.RedisAddr)
	c.RedisPass = env("REDIS_PASSWORD", c.RedisPass)
	c.RedisDB = atoi("REDIS_DB", c.RedisDB)
	c.GeminiBase = env("GEMINI_BASE_URL", c.GeminiBase)
	c.GeminiModel = env("GEMINI_MODEL", c.GeminiModel)
	c.GeminiKey = env("GEMINI_API_KEY", env("GOOGLE_API_KEY", c.GeminiKey))
	c.GeminiRPS = atoi("GEMINI_RPS", c.GeminiRPS)
	c.GeminiTimeout = seconds("GEMINI_TIMEOUT_SECONDS", c.GeminiTimeout)
	c.CacheTTL = seconds("CACHE_TTL_SECONDS", c.CacheTTL)
	c.RequestTimeout = seconds("REQUEST_TIMEOUT_SECONDS", c.RequestTimeout)
	if v := os.Getenv("EXTRACT_ENTITIES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ExtractEntities = b
		}
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func seconds(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
