package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"goal-tracker/internal/database"
	"goal-tracker/internal/utils"
)

// Шаг прогресса за одну отметку выполнения
const logProgressStep = 10

type TaskService struct {
	repository *database.Repository
	now        func() time.Time
}

func NewTaskService(repo *database.Repository) *TaskService {
	return &TaskService{
		repository: repo,
		now:        time.Now,
	}
}

type CreateTaskInput struct {
	Title     string
	Category  string
	Frequency string
	DueDate   *string
	Progress  int
	Notes     string
}

// Create добавляет задачу в конец колонки to-do
func (ts *TaskService) Create(input CreateTaskInput) (*database.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	frequency := database.Frequency(input.Frequency)
	if frequency == "" {
		frequency = database.Daily
	}
	if !frequency.Valid() {
		return nil, fmt.Errorf("%w: invalid frequency %q", ErrValidation, input.Frequency)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "personal"
	}

	dueDate, err := normalizeDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	count, err := ts.repository.CountByPartition(false)
	if err != nil {
		return nil, err
	}

	task := &database.Task{
		Title:      title,
		Category:   category,
		Frequency:  frequency,
		DueDate:    dueDate,
		Progress:   clampProgress(input.Progress),
		Completed:  false,
		Notes:      strings.TrimSpace(input.Notes),
		OrderIndex: count,
		CreatedAt:  ts.now(),
	}
	if err := ts.repository.AddTask(task); err != nil {
		return nil, err
	}

	return task, nil
}

// Log добавляет отметку выполнения и продвигает прогресс на шаг.
// Задача при этом не закрывается: перенос в completed — отдельное действие.
func (ts *TaskService) Log(taskID int) (*database.Task, error) {
	task, err := ts.repository.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task %d", ErrNotFound, taskID)
	}

	progress := task.Progress
	if progress < 100 {
		progress = min(100, progress+logProgressStep)
	}

	if err := ts.repository.LogTask(taskID, ts.now(), progress); err != nil {
		return nil, err
	}
	task.Progress = progress

	return task, nil
}

// Delete удаляет задачу; её колонка заново нумеруется без дыр
func (ts *TaskService) Delete(taskID int) error {
	task, err := ts.repository.GetTask(taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("%w: task %d", ErrNotFound, taskID)
	}

	return ts.repository.DeleteTaskAndCompact(task)
}

// Reorder принимает полный порядок колонки. Список обязан содержать все задачи,
// уже находящиеся в колонке; задачи из противоположной колонки переносятся —
// так перетаскивание между колонками работает как переключение completed.
func (ts *TaskService) Reorder(orderedIDs []int, completed bool) error {
	seen := make(map[int]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return fmt.Errorf("%w: duplicate task id %d", ErrValidation, id)
		}
		seen[id] = true
	}

	tasks, err := ts.repository.GetAllTasks()
	if err != nil {
		return err
	}

	known := make(map[int]bool, len(tasks))
	for _, task := range tasks {
		known[task.ID] = true
	}
	for _, id := range orderedIDs {
		if !known[id] {
			return fmt.Errorf("%w: unknown task id %d", ErrValidation, id)
		}
	}

	// Список авторитетен: задача колонки, не попавшая в него, потерялась бы
	for _, task := range tasks {
		if task.Completed == completed && !seen[task.ID] {
			return fmt.Errorf("%w: task %d is missing from the order list", ErrValidation, task.ID)
		}
	}

	return ts.repository.ReorderPartition(orderedIDs, completed)
}

// List возвращает обе колонки, каждая отсортирована по order_index
func (ts *TaskService) List() (todo, completed []database.Task, err error) {
	todo, err = ts.repository.GetTasksByPartition(false)
	if err != nil {
		return nil, nil, err
	}
	completed, err = ts.repository.GetTasksByPartition(true)
	if err != nil {
		return nil, nil, err
	}
	return todo, completed, nil
}

type TaskPatch struct {
	Title        *string
	Category     *string
	Frequency    *string
	DueDate      *string
	ClearDueDate bool
	Progress     *int
	Notes        *string
	Completed    *bool
}

// Update меняет отдельные поля задачи. Явная установка completed=true
// добивает прогресс до 100; смена колонки переставляет индексы обеих колонок.
func (ts *TaskService) Update(taskID int, patch TaskPatch) (*database.Task, error) {
	task, err := ts.repository.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task %d", ErrNotFound, taskID)
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		task.Title = title
	}
	if patch.Category != nil {
		task.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Notes != nil {
		task.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.Frequency != nil {
		// Неизвестная частота молча игнорируется
		if frequency := database.Frequency(*patch.Frequency); frequency.Valid() {
			task.Frequency = frequency
		}
	}
	if patch.ClearDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		dueDate, err := normalizeDueDate(patch.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}
	if patch.Progress != nil {
		task.Progress = clampProgress(*patch.Progress)
	}
	if patch.Completed != nil && *patch.Completed && task.Progress < 100 {
		task.Progress = 100
	}

	if err := ts.repository.UpdateTask(task); err != nil {
		return nil, err
	}

	if patch.Completed != nil && *patch.Completed != task.Completed {
		if err := ts.repository.MoveTask(task, *patch.Completed); err != nil {
			return nil, err
		}
		task.Completed = *patch.Completed
		moved, err := ts.repository.GetTask(task.ID)
		if err != nil {
			return nil, err
		}
		if moved != nil {
			task = moved
		}
	}

	return task, nil
}

// SeedDefaults один раз наполняет пустое хранилище стартовым набором задач
func (ts *TaskService) SeedDefaults() error {
	tasks, err := ts.repository.GetAllTasks()
	if err != nil || len(tasks) > 0 {
		return err
	}

	defaults := []database.Task{
		{Title: "Drink green tea", Frequency: database.Daily, Category: "wellness"},
		{Title: "Yoga", Frequency: database.Daily, Category: "fitness"},
		{Title: "Gym", Frequency: database.Daily, Category: "fitness"},
		{Title: "10k steps", Frequency: database.Daily, Category: "fitness"},
		{Title: "Bike wash", Frequency: database.Weekly, Category: "lifestyle"},
		{Title: "Finish one book", Frequency: database.Weekly, Category: "learning"},
	}

	for index := range defaults {
		defaults[index].OrderIndex = index
		defaults[index].CreatedAt = ts.now()
		if err := ts.repository.AddTask(&defaults[index]); err != nil {
			return err
		}
	}

	log.Printf("🌱 Хранилище было пустым, создано стартовых задач: %d", len(defaults))
	return nil
}

func normalizeDueDate(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if _, err := utils.ParseDate(trimmed); err != nil {
		return nil, fmt.Errorf("%w: invalid due_date %q", ErrValidation, trimmed)
	}
	return &trimmed, nil
}

func clampProgress(progress int) int {
	return max(0, min(100, progress))
}
