package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	usecasecontract "github.com/Prakash9019/my-cricket-reg-app/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	MongoURI            string
	MongoDBName         string
	Port                string
	RedisURL            string
	JWTSecret           string
	PlayerIDPrefix      string
	UserIDMaxAttempts   int
	BcryptCost          int
	AccessTokenExpiry   time.Duration
	StatsCacheTTL       time.Duration
	MongoConnectTimeout time.Duration
	RateLimitPerSecond  float64
	TrustProxyHeaders   bool
	CORSAllowedOrigins  []string
	LogLevel            string
	LogFormat           string
}

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() *Config {
	return &Config{
		MongoURI:            getEnv("MONGODB_URI", ""),
		MongoDBName:         getEnv("MONGODB_DB_NAME", ""),
		Port:                getEnv("PORT", "8080"),
		RedisURL:            getEnv("REDIS_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		PlayerIDPrefix:      getEnv("PLAYER_ID_PREFIX", "IDSC"),
		UserIDMaxAttempts:   getEnvAsInt("USER_ID_MAX_ATTEMPTS", 5),
		BcryptCost:          getEnvAsInt("BCRYPT_COST", 10),
		AccessTokenExpiry:   time.Minute * time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRY_MINUTES", 60)),
		StatsCacheTTL:       time.Second * time.Duration(getEnvAsInt("STATS_CACHE_TTL_SECONDS", 30)),
		MongoConnectTimeout: time.Second * time.Duration(getEnvAsInt("MONGODB_CONNECT_TIMEOUT_SECONDS", 10)),
		RateLimitPerSecond:  getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10),
		TrustProxyHeaders:   getEnvAsBool("TRUST_PROXY_HEADERS", false),
		CORSAllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
	}
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGODB_URI environment variable not set"))
	}
	if c.MongoDBName == "" {
		errs = append(errs, errors.New("MONGODB_DB_NAME environment variable not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable not set"))
	}
	if len(c.PlayerIDPrefix) != 4 {
		errs = append(errs, errors.New("PLAYER_ID_PREFIX must be exactly 4 characters"))
	}
	return errors.Join(errs...)
}

// GetPlayerIDPrefix returns the organisation prefix of player ids.
func (c *Config) GetPlayerIDPrefix() string {
	return c.PlayerIDPrefix
}

// GetUserIDMaxAttempts returns how many user id candidates are tried before giving up.
func (c *Config) GetUserIDMaxAttempts() int {
	return c.UserIDMaxAttempts
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(name string, fallback float64) float64 {
	valueStr := getEnv(name, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(name string, fallback bool) bool {
	valueStr := getEnv(name, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

// Comma separated values, blanks dropped.
func getEnvAsList(name string, fallback []string) []string {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
