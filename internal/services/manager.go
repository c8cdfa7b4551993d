package services

import (
	"goal-tracker/internal/database"
)

type ServiceManager struct {
	Task         *TaskService
	Goal         *GoalService
	Dashboard    *DashboardService
	Notification *NotificationService
	repository   *database.Repository
}

func NewServiceManager(db *database.Database, channels ...ReminderChannel) *ServiceManager {
	repo := database.NewRepository(db)

	return &ServiceManager{
		Task:         NewTaskService(repo),
		Goal:         NewGoalService(repo),
		Dashboard:    NewDashboardService(repo),
		Notification: NewNotificationService(repo, channels...),
		repository:   repo,
	}
}
