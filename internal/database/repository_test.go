package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err)
	// одна in-memory база на все соединения пула
	db.GetDB().SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db)
}

func addTask(t *testing.T, repo *Repository, title string, completed bool, orderIndex int) *Task {
	t.Helper()

	task := &Task{
		Title:      title,
		Category:   "personal",
		Frequency:  Daily,
		Completed:  completed,
		OrderIndex: orderIndex,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.AddTask(task))
	return task
}

func TestAddTaskAssignsID(t *testing.T) {
	repo := newTestRepository(t)

	first := addTask(t, repo, "first", false, 0)
	second := addTask(t, repo, "second", false, 1)

	assert.NotZero(t, first.ID)
	assert.NotZero(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetTaskMissingReturnsNil(t *testing.T) {
	repo := newTestRepository(t)

	task, err := repo.GetTask(42)

	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestGetTaskRoundTrip(t *testing.T) {
	repo := newTestRepository(t)

	due := "2026-09-15"
	task := &Task{
		Title:      "with due date",
		Category:   "work",
		Frequency:  Weekly,
		DueDate:    &due,
		Progress:   30,
		Notes:      "some notes",
		OrderIndex: 0,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.AddTask(task))

	got, err := repo.GetTask(task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "with due date", got.Title)
	assert.Equal(t, Weekly, got.Frequency)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, due, *got.DueDate)
	assert.Equal(t, 30, got.Progress)
	assert.Equal(t, "some notes", got.Notes)
	assert.False(t, got.Completed)
}

func TestReorderPartitionAssignsPositions(t *testing.T) {
	repo := newTestRepository(t)

	a := addTask(t, repo, "a", false, 0)
	b := addTask(t, repo, "b", false, 1)
	c := addTask(t, repo, "c", false, 2)

	require.NoError(t, repo.ReorderPartition([]int{c.ID, a.ID, b.ID}, false))

	tasks, err := repo.GetTasksByPartition(false)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "c", tasks[0].Title)
	assert.Equal(t, "a", tasks[1].Title)
	assert.Equal(t, "b", tasks[2].Title)
	for i, task := range tasks {
		assert.Equal(t, i, task.OrderIndex)
	}
}

func TestReorderPartitionFlipsCompleted(t *testing.T) {
	repo := newTestRepository(t)

	task := addTask(t, repo, "todo", false, 0)

	require.NoError(t, repo.ReorderPartition([]int{task.ID}, true))

	got, err := repo.GetTask(task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, 0, got.OrderIndex)
}

func TestDeleteTaskAndCompact(t *testing.T) {
	repo := newTestRepository(t)

	addTask(t, repo, "a", false, 0)
	b := addTask(t, repo, "b", false, 1)
	addTask(t, repo, "c", false, 2)
	done := addTask(t, repo, "done", true, 0)

	require.NoError(t, repo.DeleteTaskAndCompact(b))

	todo, err := repo.GetTasksByPartition(false)
	require.NoError(t, err)
	require.Len(t, todo, 2)
	assert.Equal(t, 0, todo[0].OrderIndex)
	assert.Equal(t, 1, todo[1].OrderIndex)

	// Противоположная колонка не задета
	got, err := repo.GetTask(done.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.OrderIndex)
}

func TestMoveTaskBetweenPartitions(t *testing.T) {
	repo := newTestRepository(t)

	a := addTask(t, repo, "a", false, 0)
	b := addTask(t, repo, "b", false, 1)
	done := addTask(t, repo, "done", true, 0)

	require.NoError(t, repo.MoveTask(a, true))

	got, err := repo.GetTask(a.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, 1, got.OrderIndex)

	remaining, err := repo.GetTask(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining.OrderIndex)

	kept, err := repo.GetTask(done.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, kept.OrderIndex)
}

func TestLogTaskRecordsTimestampAndProgress(t *testing.T) {
	repo := newTestRepository(t)

	task := addTask(t, repo, "logged", false, 0)
	loggedAt := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)

	require.NoError(t, repo.LogTask(task.ID, loggedAt, 10))

	times, err := repo.GetTaskLogTimes(task.ID)
	require.NoError(t, err)
	require.Len(t, times, 1)
	assert.True(t, times[0].Equal(loggedAt))

	got, err := repo.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Progress)
}

func TestGetLogCountsByDate(t *testing.T) {
	repo := newTestRepository(t)

	task := addTask(t, repo, "logged", false, 0)
	day1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.LogTask(task.ID, day1, 10))
	require.NoError(t, repo.LogTask(task.ID, day2, 20))
	require.NoError(t, repo.LogTask(task.ID, day2.Add(2*time.Hour), 30))

	counts, err := repo.GetLogCountsByDate("2026-08-27")
	require.NoError(t, err)
	assert.Equal(t, 1, counts["2026-08-27"])
	assert.Equal(t, 2, counts["2026-08-28"])

	counts, err = repo.GetLogCountsByDate("2026-08-28")
	require.NoError(t, err)
	assert.NotContains(t, counts, "2026-08-27")
}

func TestGetTaskTotals(t *testing.T) {
	repo := newTestRepository(t)

	total, completed, progressSum, err := repo.GetTaskTotals()
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, completed)
	assert.Zero(t, progressSum)

	a := addTask(t, repo, "a", false, 0)
	a.Progress = 40
	require.NoError(t, repo.UpdateTask(a))
	addTask(t, repo, "b", true, 0)

	total, completed, progressSum, err = repo.GetTaskTotals()
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 40, progressSum)
}

func TestReplaceGoalKeepsSingleRecord(t *testing.T) {
	repo := newTestRepository(t)

	goal, err := repo.GetGoal()
	require.NoError(t, err)
	assert.Nil(t, goal)

	first := &Goal{Title: "first", StartDate: "2026-01-01", EndDate: "2026-04-01"}
	require.NoError(t, repo.ReplaceGoal(first))

	second := &Goal{Title: "second", StartDate: "2026-06-01", EndDate: "2026-09-01"}
	require.NoError(t, repo.ReplaceGoal(second))

	goal, err = repo.GetGoal()
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.Equal(t, "second", goal.Title)

	var count int
	require.NoError(t, repo.Db.GetDB().QueryRow("SELECT COUNT(*) FROM goal").Scan(&count))
	assert.Equal(t, 1, count)
}
