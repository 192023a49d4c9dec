package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	MusicDir    string // Library root scanned for audio files
	CacheDir    string // Base directory for the lyrics/covers cache
	WebAppDir   string // Path to the web UI files
	ServerAddr  string
	LyricAPIURL string // Base URL of the external lyrics/cover lookup service

	// 日志配置
	LogLevel      string
	LogPath       string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		MusicDir:    getEnv("MUSIC_DIR", "/music"),
		CacheDir:    getEnv("CACHE_DIR", "cache"),
		WebAppDir:   getEnv("WEB_APP_DIR", filepath.Join("web", "ui")),
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		LyricAPIURL: getEnv("LYRIC_API_URL", "https://api.lrc.cx"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPath:       getEnv("LOG_PATH", ""),
		LogMaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvInt("LOG_MAX_AGE", 30),
	}
}
