package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Analysis AnalysisConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini     string
	AnalysisJobTopic string // Watermill topic carrying queued analysis jobs
}

type AIConfig struct {
	LLMProvider   string // "gemini" or "ollama"
	LLMModel      string // e.g. "gemini-1.5-flash", "llama3"
	OllamaBaseURL string
}

type AnalysisConfig struct {
	TimeoutSeconds    int
	MaxTokensPerChunk int
	MaxRetries        int
	BaseDelayMs       int
}

func (a AnalysisConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

func (a AnalysisConfig) BaseDelay() time.Duration {
	return time.Duration(a.BaseDelayMs) * time.Millisecond
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini:     getEnv("GOOGLE_GEMINI_API_KEY", ""),
			AnalysisJobTopic: getEnv("ANALYSIS_JOB_TOPIC_NAME", "ANALYZE_CONTRACT"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:      getEnv("LLM_MODEL", "gemini-1.5-flash"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Analysis: AnalysisConfig{
			TimeoutSeconds:    getEnvAsInt("ANALYSIS_TIMEOUT_SECONDS", 300),
			MaxTokensPerChunk: getEnvAsInt("ANALYSIS_MAX_TOKENS_PER_CHUNK", 3000),
			MaxRetries:        getEnvAsInt("ANALYSIS_MAX_RETRIES", 3),
			BaseDelayMs:       getEnvAsInt("ANALYSIS_RETRY_BASE_DELAY_MS", 1000),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
