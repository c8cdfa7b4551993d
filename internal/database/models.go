package database

import "time"

type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Once    Frequency = "once"
)

var Frequencies = map[Frequency]bool{
	Daily:   true,
	Weekly:  true,
	Monthly: true,
	Once:    true,
}

func (f Frequency) Valid() bool {
	return Frequencies[f]
}

type Task struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Frequency  Frequency `json:"frequency"`
	DueDate    *string   `json:"due_date"`
	Progress   int       `json:"progress"`
	Completed  bool      `json:"completed"`
	Notes      string    `json:"notes"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

type Goal struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// GoalStatus — цель вместе с вычисленным прогрессом по таймлайну
type GoalStatus struct {
	Goal
	TimelineProgress int `json:"timeline_progress"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type DashboardStats struct {
	TotalTasks     int          `json:"total_tasks"`
	CompletedTasks int          `json:"completed_tasks"`
	CompletionRate int          `json:"completion_rate"`
	AvgProgress    int          `json:"avg_progress"`
	DailySeries    []DailyCount `json:"daily_series"`
}
