package services

import (
	"fmt"
	"log"
	"strings"

	"goal-tracker/internal/database"
)

// Статусы каналов доставки в ответе рассылки
const (
	StatusSent    = "sent"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Число задач в тексте напоминания
const reminderTaskLimit = 8

// ReminderChannel — канал доставки напоминаний.
// Send возвращает false без ошибки, если канал не настроен.
type ReminderChannel interface {
	Name() string
	Send(message string) (bool, error)
}

type NotificationService struct {
	repository *database.Repository
	channels   []ReminderChannel
}

func NewNotificationService(repo *database.Repository, channels ...ReminderChannel) *NotificationService {
	return &NotificationService{
		repository: repo,
		channels:   channels,
	}
}

// ReminderMessage собирает текст напоминания из невыполненных задач
func (ns *NotificationService) ReminderMessage() (string, error) {
	pending, err := ns.repository.GetTasksByPartition(false)
	if err != nil {
		return "", err
	}

	var items []string
	for _, task := range pending {
		items = append(items, fmt.Sprintf("- %s (%s)", task.Title, task.Frequency))
		if len(items) == reminderTaskLimit {
			break
		}
	}
	if len(items) == 0 {
		items = append(items, "- All done, great work!")
	}

	return fmt.Sprintf(
		"Your daily focus tasks:\n%s\n\nKeep going on your 3-month goal.",
		strings.Join(items, "\n"),
	), nil
}

// SendTestReminders рассылает напоминание по всем каналам и возвращает
// статус каждого. Сбой канала — это статус failed, а не ошибка вызова.
func (ns *NotificationService) SendTestReminders() (map[string]string, error) {
	message, err := ns.ReminderMessage()
	if err != nil {
		return nil, err
	}

	results := make(map[string]string, len(ns.channels))
	for _, channel := range ns.channels {
		sent, err := channel.Send(message)
		switch {
		case err != nil:
			log.Printf("⚠️ Канал %s: ошибка отправки: %v", channel.Name(), err)
			results[channel.Name()] = StatusFailed
		case sent:
			results[channel.Name()] = StatusSent
		default:
			results[channel.Name()] = StatusSkipped
		}
	}

	return results, nil
}

// RunDailyReminder — точка входа для планировщика. Ошибки только логируются:
// сбой рассылки не должен трогать состояние движка.
func (ns *NotificationService) RunDailyReminder() {
	results, err := ns.SendTestReminders()
	if err != nil {
		log.Printf("⚠️ Ежедневное напоминание не отправлено: %v", err)
		return
	}

	for channel, status := range results {
		log.Printf("🔔 Напоминание, канал %s: %s", channel, status)
	}
}
