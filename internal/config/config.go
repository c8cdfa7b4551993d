package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		Path string
	}
	SMTP struct {
		Host string
		Port string
		User string
		Pass string
		To   string
	}
	Telegram struct {
		Token  string
		ChatID int64
	}
	WhatsApp struct {
		Phone  string
		APIKey string
	}
}

// Load читает конфигурацию из окружения. Переменные каналов доставки
// необязательны: ненастроенный канал получает статус skipped
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Database.Path = getEnv("DB_PATH", "goal-tracker.db")

	cfg.SMTP.Host = getEnv("SMTP_HOST", "")
	cfg.SMTP.Port = getEnv("SMTP_PORT", "587")
	cfg.SMTP.User = getEnv("SMTP_USER", "")
	cfg.SMTP.Pass = getEnv("SMTP_PASS", "")
	cfg.SMTP.To = getEnv("REMINDER_EMAIL", "")

	cfg.Telegram.Token = getEnv("TELEGRAM_BOT_TOKEN", "")
	if chatIDStr := getEnv("TELEGRAM_CHAT_ID", ""); chatIDStr != "" {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			log.Printf("⚠️ Неверный TELEGRAM_CHAT_ID, канал telegram отключён: %v", err)
		} else {
			cfg.Telegram.ChatID = chatID
		}
	}

	cfg.WhatsApp.Phone = getEnv("WHATSAPP_PHONE", "")
	cfg.WhatsApp.APIKey = getEnv("WHATSAPP_API_KEY", "")

	log.Printf("✅ Конфигурация загружена: порт=%s, БД=%s", cfg.Server.Port, cfg.Database.Path)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
