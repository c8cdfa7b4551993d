package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	name     string
	sent     bool
	err      error
	messages []string
}

func (c *fakeChannel) Name() string { return c.name }

func (c *fakeChannel) Send(message string) (bool, error) {
	c.messages = append(c.messages, message)
	return c.sent, c.err
}

func TestReminderMessageListsPendingTasks(t *testing.T) {
	repo := newTestRepository(t)
	ts := NewTaskService(repo)
	ns := NewNotificationService(repo)

	_, err := ts.Create(CreateTaskInput{Title: "Yoga", Frequency: "daily"})
	require.NoError(t, err)
	_, err = ts.Create(CreateTaskInput{Title: "Bike wash", Frequency: "weekly"})
	require.NoError(t, err)
	done, err := ts.Create(CreateTaskInput{Title: "Done already", Frequency: "once"})
	require.NoError(t, err)
	require.NoError(t, ts.Reorder([]int{done.ID}, true))

	message, err := ns.ReminderMessage()
	require.NoError(t, err)

	assert.Contains(t, message, "Your daily focus tasks:")
	assert.Contains(t, message, "- Yoga (daily)")
	assert.Contains(t, message, "- Bike wash (weekly)")
	assert.NotContains(t, message, "Done already")
	assert.Contains(t, message, "Keep going on your 3-month goal.")
}

func TestReminderMessageLimitsToEight(t *testing.T) {
	repo := newTestRepository(t)
	ts := NewTaskService(repo)
	ns := NewNotificationService(repo)

	for _, title := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		_, err := ts.Create(CreateTaskInput{Title: title, Frequency: "daily"})
		require.NoError(t, err)
	}

	message, err := ns.ReminderMessage()
	require.NoError(t, err)

	assert.Equal(t, reminderTaskLimit, strings.Count(message, "\n- "))
	assert.NotContains(t, message, "- i (daily)")
}

func TestReminderMessageEmptyStore(t *testing.T) {
	ns := NewNotificationService(newTestRepository(t))

	message, err := ns.ReminderMessage()
	require.NoError(t, err)
	assert.Contains(t, message, "- All done, great work!")
}

func TestSendTestRemindersStatuses(t *testing.T) {
	ok := &fakeChannel{name: "email", sent: true}
	off := &fakeChannel{name: "telegram"}
	broken := &fakeChannel{name: "whatsapp", err: errors.New("boom")}
	ns := NewNotificationService(newTestRepository(t), ok, off, broken)

	results, err := ns.SendTestReminders()
	require.NoError(t, err)

	assert.Equal(t, StatusSent, results["email"])
	assert.Equal(t, StatusSkipped, results["telegram"])
	assert.Equal(t, StatusFailed, results["whatsapp"])

	// Все каналы получили один и тот же текст
	require.Len(t, ok.messages, 1)
	require.Len(t, broken.messages, 1)
	assert.Equal(t, ok.messages[0], broken.messages[0])
}

func TestRunDailyReminderSwallowsChannelErrors(t *testing.T) {
	broken := &fakeChannel{name: "whatsapp", err: errors.New("boom")}
	ns := NewNotificationService(newTestRepository(t), broken)

	// Сбой канала не должен ронять планировщик
	assert.NotPanics(t, func() { ns.RunDailyReminder() })
	assert.Len(t, broken.messages, 1)
}

func TestChannelsSkippedWhenUnconfigured(t *testing.T) {
	channels := []ReminderChannel{
		NewEmailChannel("", "587", "", "", ""),
		NewTelegramChannel("", 0),
		NewWhatsAppChannel("", ""),
	}
	ns := NewNotificationService(newTestRepository(t), channels...)

	results, err := ns.SendTestReminders()
	require.NoError(t, err)

	assert.Equal(t, StatusSkipped, results["email"])
	assert.Equal(t, StatusSkipped, results["telegram"])
	assert.Equal(t, StatusSkipped, results["whatsapp"])
}

func TestWhatsAppChannelSend(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	channel := &whatsappChannel{
		phone:   "+70000000000",
		apiKey:  "key",
		baseURL: srv.URL,
		client:  &http.Client{Timeout: time.Second},
	}

	sent, err := channel.Send("hello")
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, "+70000000000", gotQuery["phone"][0])
	assert.Equal(t, "hello", gotQuery["text"][0])
	assert.Equal(t, "key", gotQuery["apikey"][0])
}

func TestWhatsAppChannelFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	channel := &whatsappChannel{
		phone:   "+70000000000",
		apiKey:  "bad",
		baseURL: srv.URL,
		client:  &http.Client{Timeout: time.Second},
	}

	sent, err := channel.Send("hello")
	assert.False(t, sent)
	assert.Error(t, err)
}
