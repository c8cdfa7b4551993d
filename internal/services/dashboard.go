package services

import (
	"math"
	"time"

	"goal-tracker/internal/database"
	"goal-tracker/internal/utils"
)

// Окно графика активности: последние 14 календарных дней
const seriesWindowDays = 14

type DashboardService struct {
	repository *database.Repository
	now        func() time.Time
}

func NewDashboardService(repo *database.Repository) *DashboardService {
	return &DashboardService{
		repository: repo,
		now:        time.Now,
	}
}

// GetStats собирает сводку по текущему состоянию хранилища
func (ds *DashboardService) GetStats() (*database.DashboardStats, error) {
	total, completed, progressSum, err := ds.repository.GetTaskTotals()
	if err != nil {
		return nil, err
	}

	stats := &database.DashboardStats{
		TotalTasks:     total,
		CompletedTasks: completed,
	}
	if total > 0 {
		stats.CompletionRate = int(math.Round(100 * float64(completed) / float64(total)))
		stats.AvgProgress = int(math.Round(float64(progressSum) / float64(total)))
	}

	series, err := ds.dailySeries()
	if err != nil {
		return nil, err
	}
	stats.DailySeries = series

	return stats, nil
}

// dailySeries строит плотный ряд по дням: дни без отметок присутствуют
// с нулём, иначе график ломается
func (ds *DashboardService) dailySeries() ([]database.DailyCount, error) {
	days := utils.LastNDays(ds.now(), seriesWindowDays)

	counts, err := ds.repository.GetLogCountsByDate(days[0])
	if err != nil {
		return nil, err
	}

	series := make([]database.DailyCount, 0, len(days))
	for _, day := range days {
		series = append(series, database.DailyCount{
			Date:  day,
			Count: counts[day],
		})
	}

	return series, nil
}
