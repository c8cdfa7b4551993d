package app

import (
	"log"

	"goal-tracker/internal/config"
	"goal-tracker/internal/database"
	"goal-tracker/internal/server"
	"goal-tracker/internal/services"

	"github.com/robfig/cron/v3"
)

type Application struct {
	config   *config.Config
	db       *database.Database
	services *services.ServiceManager
	server   *server.Server
	cron     *cron.Cron
}

func New(cfg *config.Config) (*Application, error) {
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	channels := []services.ReminderChannel{
		services.NewEmailChannel(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.To),
		services.NewTelegramChannel(cfg.Telegram.Token, cfg.Telegram.ChatID),
		services.NewWhatsAppChannel(cfg.WhatsApp.Phone, cfg.WhatsApp.APIKey),
	}
	serviceManager := services.NewServiceManager(db, channels...)

	app := &Application{
		config:   cfg,
		db:       db,
		services: serviceManager,
		server:   server.New(serviceManager),
		cron:     cron.New(),
	}

	app.setupCronJobs()

	return app, nil
}

func (a *Application) Start() error {
	log.Println("🚀 Запуск приложения...")

	if err := a.services.Task.SeedDefaults(); err != nil {
		log.Printf("⚠️ Ошибка создания стартовых задач: %v", err)
	}

	a.cron.Start()

	go func() {
		if err := a.server.Run(":" + a.config.Server.Port); err != nil {
			log.Fatalf("❌ Ошибка HTTP-сервера: %v", err)
		}
	}()

	log.Printf("✅ Приложение запущено. API доступен на порту: %s", a.config.Server.Port)

	return nil
}

func (a *Application) Stop() error {
	log.Println("🛑 Остановка приложения...")

	a.cron.Stop()

	if err := a.db.Close(); err != nil {
		log.Printf("⚠️ Ошибка закрытия БД: %v", err)
	}

	log.Println("✅ Приложение остановлено")
	return nil
}

func (a *Application) setupCronJobs() {
	// Ежедневное напоминание в 08:00 локального времени
	_, err := a.cron.AddFunc("0 8 * * *", func() {
		a.services.Notification.RunDailyReminder()
	})
	if err != nil {
		panic(err)
	}
}
