package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort         string
	AppEnv          string
	DBDSN           string
	JWTSecret       string
	JWTExpiresMin   int
	RedisAddr       string
	RedisPassword   string
	FrontendBaseURL string
	LogLevel        string
	LogFormat       string
	TimeZone        string // zona waktu pelanggan, untuk batas deadline

	Telegram TelegramConfig
}

type TelegramConfig struct {
	BotToken    string
	AdminChatID int64 // chat tujuan ringkasan pesanan baru
	InitDataTTL time.Duration
	WebAppURL   string // dibuka lewat tombol menu bot, harus https
	// Bridge polling: tunggu bot siap paling lama WaitTimeout
	PollInterval time.Duration
	WaitTimeout  time.Duration
}

func Load() Config {
	frontend := get("FRONTEND_BASE_URL", "http://localhost:5173")
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	chatID, _ := strconv.ParseInt(get("TELEGRAM_ADMIN_CHAT_ID", "0"), 10, 64)
	initTTL, _ := strconv.Atoi(get("INIT_DATA_MAX_AGE_MIN", "1440"))

	return Config{
		AppPort:         get("APP_PORT", "8080"),
		AppEnv:          get("APP_ENV", "development"),
		DBDSN:           must("DB_DSN"),
		JWTSecret:       must("JWT_SECRET"),
		JWTExpiresMin:   expires,
		RedisAddr:       get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   get("REDIS_PASSWORD", ""),
		FrontendBaseURL: frontend,
		LogLevel:        get("LOG_LEVEL", ""),
		LogFormat:       get("LOG_FORMAT", ""),
		TimeZone:        get("APP_TIMEZONE", "Asia/Jakarta"),
		Telegram: TelegramConfig{
			BotToken:     get("TELEGRAM_BOT_TOKEN", ""),
			AdminChatID:  chatID,
			InitDataTTL:  time.Duration(initTTL) * time.Minute,
			WebAppURL:    frontend,
			PollInterval: 100 * time.Millisecond,
			WaitTimeout:  5 * time.Second,
		},
	}
}

// Location resolves TimeZone. An unknown zone gives UTC and the lookup error.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC, err
	}
	return loc, nil
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
