package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	LogLevel string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	PromptSource         string
	PromptFile           string
	PromptS3Bucket       string
	PromptS3Key          string
	PromptRedisKey       string
	PromptReloadInterval time.Duration

	S3Endpoint       string
	S3Region         string
	AWSAccessKey     string
	AWSSecretKey     string
	S3ForcePathStyle bool

	RedisURL string

	CORSAllowedOrigins []string
	RateLimitPerMinute int
	MaxMessageLength   int

	JWTSecret string
	JWTIssuer string
}

// AuthEnabled reports whether the chat API requires a bearer token.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
		slog.Warn("bad int env, using default", "key", key, "value", v)
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "true" || v == "1" {
			return true
		}
		if v == "false" || v == "0" {
			return false
		}
		slog.Warn("bad bool env, using default", "key", key, "value", v)
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
		slog.Warn("bad duration env, using default", "key", key, "value", v)
	}
	return def
}

func getList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}

	// try to find .env files starting from current directory and going up
	currentDir, err := os.Getwd()
	if err != nil {
		slog.Debug("failed to get current directory", "error", err)
		return
	}

	// look in current directory and up to 3 parent directories
	searchDirs := []string{currentDir}
	for i := 0; i < 3; i++ {
		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break // reached root
		}
		searchDirs = append(searchDirs, parent)
		currentDir = parent
	}

	loadedAny := false
	for _, dir := range searchDirs {
		for _, envFile := range envFiles {
			envPath := filepath.Join(dir, envFile)
			if _, err := os.Stat(envPath); err == nil {
				if err := godotenv.Load(envPath); err == nil {
					slog.Debug("loaded environment file", "path", envPath)
					loadedAny = true
				} else {
					slog.Debug("failed to load environment file", "path", envPath, "error", err)
				}
			}
		}
		if loadedAny {
			break // stop searching once we find .env files in a directory
		}
	}

	if !loadedAny {
		slog.Debug("no .env files found, using system environment variables only")
	}
}

func Load() Config {
	loadEnvFiles()
	return Config{
		HTTPAddr: getenv("HTTP_ADDR", ":"+getenv("PORT", "3000")),
		LogLevel: getenv("LOG_LEVEL", "info"),

		OpenAIAPIKey:  getenv("OPENAI_API_KEY", ""),
		OpenAIModel:   getenv("OPENAI_MODEL", "o3-mini"),
		OpenAIBaseURL: getenv("OPENAI_BASE_URL", ""),

		PromptSource:         getenv("PROMPT_SOURCE", "embedded"),
		PromptFile:           getenv("PROMPT_FILE", ""),
		PromptS3Bucket:       getenv("PROMPT_S3_BUCKET", ""),
		PromptS3Key:          getenv("PROMPT_S3_KEY", "prompts/chat.tmpl"),
		PromptRedisKey:       getenv("PROMPT_REDIS_KEY", "prompt:chat"),
		PromptReloadInterval: mustDuration("PROMPT_RELOAD_INTERVAL", time.Minute),

		S3Endpoint:       getenv("S3_ENDPOINT", ""),
		S3Region:         getenv("S3_REGION", "us-east-1"),
		AWSAccessKey:     getenv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:     getenv("AWS_SECRET_ACCESS_KEY", ""),
		S3ForcePathStyle: getBool("S3_FORCE_PATH_STYLE", true),

		RedisURL: getenv("REDIS_URL", ""),

		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitPerMinute: mustInt("RATE_LIMIT_PER_MINUTE", 0),
		MaxMessageLength:   mustInt("MAX_MESSAGE_LENGTH", 4000),

		JWTSecret: getenv("AUTH_JWT_SECRET", ""),
		JWTIssuer: getenv("AUTH_JWT_ISSUER", "careerchat"),
	}
}

// ParseLogLevel maps LOG_LEVEL values onto slog levels, defaulting to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
