package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"goal-tracker/internal/database"
	"goal-tracker/internal/utils"
)

type GoalService struct {
	repository *database.Repository
	now        func() time.Time
}

func NewGoalService(repo *database.Repository) *GoalService {
	return &GoalService{
		repository: repo,
		now:        time.Now,
	}
}

// Set целиком заменяет цель: одновременно существует только одна
func (gs *GoalService) Set(title, description, startDate, endDate string) (*database.GoalStatus, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_date %q", ErrValidation, startDate)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_date %q", ErrValidation, endDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date must not precede start_date", ErrValidation)
	}

	goal := &database.Goal{
		Title:       title,
		Description: strings.TrimSpace(description),
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if err := gs.repository.ReplaceGoal(goal); err != nil {
		return nil, err
	}

	return gs.status(goal), nil
}

// Get возвращает цель с прогрессом по таймлайну, nil если цель не задана
func (gs *GoalService) Get() (*database.GoalStatus, error) {
	goal, err := gs.repository.GetGoal()
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, nil
	}

	return gs.status(goal), nil
}

func (gs *GoalService) status(goal *database.Goal) *database.GoalStatus {
	return &database.GoalStatus{
		Goal:             *goal,
		TimelineProgress: gs.timelineProgress(goal),
	}
}

// timelineProgress — доля прошедшего срока цели в процентах на сегодня.
// До начала срока 0, после конца 100.
func (gs *GoalService) timelineProgress(goal *database.Goal) int {
	start, err := utils.ParseDate(goal.StartDate)
	if err != nil {
		return 0
	}
	end, err := utils.ParseDate(goal.EndDate)
	if err != nil {
		return 0
	}

	today := utils.DateOf(gs.now())
	if today.Before(start) {
		return 0
	}
	if !today.Before(end) {
		return 100
	}

	elapsed := utils.DaysBetween(start, today)
	total := utils.DaysBetween(start, end)
	progress := int(math.Round(100 * float64(elapsed) / float64(total)))

	return max(0, min(100, progress))
}
