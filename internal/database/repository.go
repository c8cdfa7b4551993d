package database

import (
	"database/sql"
	"time"
)

type Repository struct {
	Db *Database
}

func NewRepository(db *Database) *Repository {
	return &Repository{Db: db}
}

const taskColumns = "id, title, category, frequency, due_date, progress, completed, notes, order_index, created_at"

func scanTask(scanner interface{ Scan(...any) error }) (Task, error) {
	var task Task
	err := scanner.Scan(
		&task.ID,
		&task.Title,
		&task.Category,
		&task.Frequency,
		&task.DueDate,
		&task.Progress,
		&task.Completed,
		&task.Notes,
		&task.OrderIndex,
		&task.CreatedAt,
	)
	return task, err
}

// GetAllTasks возвращает все задачи: сначала колонка to-do, потом completed
func (r *Repository) GetAllTasks() ([]Task, error) {
	rows, err := r.Db.db.Query(`
		SELECT ` + taskColumns + `
		FROM tasks
		ORDER BY completed, order_index, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (r *Repository) GetTasksByPartition(completed bool) ([]Task, error) {
	rows, err := r.Db.db.Query(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE completed = ?
		ORDER BY order_index
	`, completed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// GetTask возвращает задачу по ID, nil если задачи нет
func (r *Repository) GetTask(taskID int) (*Task, error) {
	row := r.Db.db.QueryRow(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = ?
	`, taskID)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *Repository) CountByPartition(completed bool) (int, error) {
	var count int
	err := r.Db.db.QueryRow("SELECT COUNT(*) FROM tasks WHERE completed = ?", completed).Scan(&count)
	return count, err
}

// AddTask вставляет задачу и проставляет её ID
func (r *Repository) AddTask(task *Task) error {
	result, err := r.Db.db.Exec(`
		INSERT INTO tasks (title, category, frequency, due_date, progress, completed, notes, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, task.Title, task.Category, task.Frequency, task.DueDate, task.Progress, task.Completed, task.Notes, task.OrderIndex)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	task.ID = int(id)

	return nil
}

// UpdateTask обновляет поля задачи, кроме completed и order_index
func (r *Repository) UpdateTask(task *Task) error {
	_, err := r.Db.db.Exec(`
		UPDATE tasks
		SET title = ?, category = ?, frequency = ?, due_date = ?, progress = ?, notes = ?
		WHERE id = ?
	`, task.Title, task.Category, task.Frequency, task.DueDate, task.Progress, task.Notes, task.ID)
	return err
}

// DeleteTaskAndCompact удаляет задачу и сдвигает индексы её колонки,
// чтобы порядок остался сплошным с нуля
func (r *Repository) DeleteTaskAndCompact(task *Task) error {
	tx, err := r.Db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM task_logs WHERE task_id = ?", task.ID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM tasks WHERE id = ?", task.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		UPDATE tasks SET order_index = order_index - 1
		WHERE completed = ? AND order_index > ?
	`, task.Completed, task.OrderIndex); err != nil {
		return err
	}

	return tx.Commit()
}

// ReorderPartition атомарно назначает каждой задаче из списка позицию в колонке.
// Задачи из противоположной колонки при этом переносятся в целевую.
func (r *Repository) ReorderPartition(orderedIDs []int, completed bool) error {
	tx, err := r.Db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("UPDATE tasks SET completed = ?, order_index = ? WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for index, taskID := range orderedIDs {
		if _, err := stmt.Exec(completed, index, taskID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// MoveTask переносит задачу в другую колонку: встаёт в конец целевой,
// прежняя колонка уплотняется
func (r *Repository) MoveTask(task *Task, completed bool) error {
	tx, err := r.Db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE tasks
		SET completed = ?, order_index = (SELECT COUNT(*) FROM tasks WHERE completed = ?)
		WHERE id = ?
	`, completed, completed, task.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		UPDATE tasks SET order_index = order_index - 1
		WHERE completed = ? AND order_index > ?
	`, task.Completed, task.OrderIndex); err != nil {
		return err
	}

	return tx.Commit()
}

// LogTask добавляет отметку о выполнении и обновляет прогресс одной транзакцией
func (r *Repository) LogTask(taskID int, loggedAt time.Time, progress int) error {
	tx, err := r.Db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO task_logs (task_id, logged_at, logged_on)
		VALUES (?, ?, ?)
	`, taskID, loggedAt.Format(time.RFC3339), loggedAt.Format("2006-01-02")); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE tasks SET progress = ? WHERE id = ?", progress, taskID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetTaskLogTimes(taskID int) ([]time.Time, error) {
	rows, err := r.Db.db.Query(`
		SELECT logged_at FROM task_logs
		WHERE task_id = ?
		ORDER BY id
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}

	return times, rows.Err()
}

// GetLogCountsByDate возвращает число отметок по дням начиная с даты since
func (r *Repository) GetLogCountsByDate(since string) (map[string]int, error) {
	rows, err := r.Db.db.Query(`
		SELECT logged_on, COUNT(*)
		FROM task_logs
		WHERE logged_on >= ?
		GROUP BY logged_on
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var date string
		var count int
		if err := rows.Scan(&date, &count); err != nil {
			return nil, err
		}
		counts[date] = count
	}

	return counts, rows.Err()
}

// GetTaskTotals возвращает агрегаты по всем задачам одним запросом
func (r *Repository) GetTaskTotals() (total, completed, progressSum int, err error) {
	err = r.Db.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(completed), 0),
			COALESCE(SUM(progress), 0)
		FROM tasks
	`).Scan(&total, &completed, &progressSum)
	return total, completed, progressSum, err
}

// Goal repository methods
func (r *Repository) GetGoal() (*Goal, error) {
	var goal Goal
	err := r.Db.db.QueryRow(`
		SELECT id, title, description, start_date, end_date
		FROM goal
		ORDER BY id DESC
		LIMIT 1
	`).Scan(
		&goal.ID,
		&goal.Title,
		&goal.Description,
		&goal.StartDate,
		&goal.EndDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &goal, nil
}

// ReplaceGoal целиком заменяет единственную запись цели
func (r *Repository) ReplaceGoal(goal *Goal) error {
	tx, err := r.Db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM goal"); err != nil {
		return err
	}
	result, err := tx.Exec(`
		INSERT INTO goal (title, description, start_date, end_date)
		VALUES (?, ?, ?, ?)
	`, goal.Title, goal.Description, goal.StartDate, goal.EndDate)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	goal.ID = int(id)

	return tx.Commit()
}
