package services

import (
	"fmt"
	"net/http"
	"net/smtp"
	"net/url"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// emailChannel шлёт напоминание письмом через SMTP
type emailChannel struct {
	host string
	port string
	user string
	pass string
	to   string
}

func NewEmailChannel(host, port, user, pass, to string) ReminderChannel {
	return &emailChannel{host: host, port: port, user: user, pass: pass, to: to}
}

func (c *emailChannel) Name() string { return "email" }

func (c *emailChannel) Send(message string) (bool, error) {
	if c.host == "" || c.user == "" || c.pass == "" || c.to == "" {
		return false, nil
	}

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Daily Task Reminder\r\n\r\n%s",
		c.user, c.to, message,
	)
	auth := smtp.PlainAuth("", c.user, c.pass, c.host)
	if err := smtp.SendMail(c.host+":"+c.port, auth, c.user, []string{c.to}, []byte(body)); err != nil {
		return false, err
	}

	return true, nil
}

// telegramChannel шлёт напоминание в чат Telegram
type telegramChannel struct {
	token  string
	chatID int64
}

func NewTelegramChannel(token string, chatID int64) ReminderChannel {
	return &telegramChannel{token: token, chatID: chatID}
}

func (c *telegramChannel) Name() string { return "telegram" }

func (c *telegramChannel) Send(message string) (bool, error) {
	if c.token == "" || c.chatID == 0 {
		return false, nil
	}

	bot, err := tgbotapi.NewBotAPI(c.token)
	if err != nil {
		return false, fmt.Errorf("ошибка создания бота: %v", err)
	}
	if _, err := bot.Send(tgbotapi.NewMessage(c.chatID, message)); err != nil {
		return false, err
	}

	return true, nil
}

// Эндпоинт CallMeBot для отправки в WhatsApp
const callMeBotURL = "https://api.callmebot.com/whatsapp.php"

// whatsappChannel шлёт напоминание через CallMeBot
type whatsappChannel struct {
	phone   string
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewWhatsAppChannel(phone, apiKey string) ReminderChannel {
	return &whatsappChannel{
		phone:   phone,
		apiKey:  apiKey,
		baseURL: callMeBotURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *whatsappChannel) Name() string { return "whatsapp" }

func (c *whatsappChannel) Send(message string) (bool, error) {
	if c.phone == "" || c.apiKey == "" {
		return false, nil
	}

	params := url.Values{}
	params.Set("phone", c.phone)
	params.Set("text", message)
	params.Set("apikey", c.apiKey)

	resp, err := c.client.Get(c.baseURL + "?" + params.Encode())
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return false, fmt.Errorf("callmebot вернул статус %d", resp.StatusCode)
	}

	return true, nil
}
