package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Auth    AuthConfig
	SMTP    SMTPConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type BackendConfig struct {
	BaseURL    string // procurement analysis API
	RSSBaseURL string // public procurement portal RSS feed, %s = purchase number
	PollSecs   int    // analysis status poll interval
}

type AuthConfig struct {
	CookieName       string
	CookieTTLDays    int
	YandexClientID   string
	YandexSecret     string
	YandexRedirect   string
	StateSecret      string // signs the OAuth state parameter
	NotifyCompletion bool   // email when a watched analysis finishes
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
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
		},
		Backend: BackendConfig{
			BaseURL:    getEnv("ANALYSIS_API_URL", "http://194.87.86.58"),
			RSSBaseURL: getEnv("EIS_RSS_URL", "https://zakupki.gov.ru/epz/order/notice/rss/%s.xml"),
			PollSecs:   getEnvAsInt("ANALYSIS_POLL_SECONDS", 3),
		},
		Auth: AuthConfig{
			CookieName:       getEnv("AUTH_COOKIE_NAME", "access_token"),
			CookieTTLDays:    getEnvAsInt("AUTH_COOKIE_TTL_DAYS", 7),
			YandexClientID:   getEnv("YANDEX_CLIENT_ID", ""),
			YandexSecret:     getEnv("YANDEX_CLIENT_SECRET", ""),
			YandexRedirect:   getEnv("YANDEX_REDIRECT_URL", ""),
			StateSecret:      getEnv("OAUTH_STATE_SECRET", ""),
			NotifyCompletion: getEnv("NOTIFY_ANALYSIS_COMPLETION", "false") == "true",
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Ferman AI"),
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
