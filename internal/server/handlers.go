package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"goal-tracker/internal/database"
	"goal-tracker/internal/services"
)

// writeError маппит ошибки ядра на HTTP-статусы
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func taskIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleListTasks(c *gin.Context) {
	todo, completed, err := s.services.Task.List()
	if err != nil {
		writeError(c, err)
		return
	}

	tasks := make([]database.Task, 0, len(todo)+len(completed))
	tasks = append(tasks, todo...)
	tasks = append(tasks, completed...)
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var body struct {
		Title     string  `json:"title"`
		Category  string  `json:"category"`
		Frequency string  `json:"frequency"`
		DueDate   *string `json:"due_date"`
		Progress  int     `json:"progress"`
		Notes     string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := s.services.Task.Create(services.CreateTaskInput{
		Title:     body.Title,
		Category:  body.Category,
		Frequency: body.Frequency,
		DueDate:   body.DueDate,
		Progress:  body.Progress,
		Notes:     body.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := s.services.Task.Update(taskID, patchFromPayload(payload))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// patchFromPayload переводит сырой JSON в патч: поле, которого нет в теле,
// отличается от поля со значением null
func patchFromPayload(payload map[string]any) services.TaskPatch {
	var patch services.TaskPatch

	if v, ok := payload["title"].(string); ok {
		patch.Title = &v
	}
	if v, ok := payload["category"].(string); ok {
		patch.Category = &v
	}
	if v, ok := payload["notes"].(string); ok {
		patch.Notes = &v
	}
	if v, ok := payload["frequency"].(string); ok {
		patch.Frequency = &v
	}
	if raw, ok := payload["due_date"]; ok {
		if raw == nil {
			patch.ClearDueDate = true
		} else if v, ok := raw.(string); ok {
			patch.DueDate = &v
		}
	}
	if v, ok := payload["progress"].(float64); ok {
		progress := int(v)
		patch.Progress = &progress
	}
	if v, ok := payload["completed"].(bool); ok {
		patch.Completed = &v
	}

	return patch
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := s.services.Task.Delete(taskID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleLogTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := s.services.Task.Log(taskID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged", "progress": task.Progress})
}

func (s *Server) handleReorderTasks(c *gin.Context) {
	var body struct {
		OrderedIDs []int `json:"ordered_ids"`
		Completed  bool  `json:"completed"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.services.Task.Reorder(body.OrderedIDs, body.Completed); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetGoal(c *gin.Context) {
	goal, err := s.services.Goal.Get()
	if err != nil {
		writeError(c, err)
		return
	}
	if goal == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (s *Server) handleSetGoal(c *gin.Context) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	goal, err := s.services.Goal.Set(body.Title, body.Description, body.StartDate, body.EndDate)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (s *Server) handleDashboard(c *gin.Context) {
	stats, err := s.services.Dashboard.GetStats()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// handleTestReminders всегда отвечает 200: сбой канала — это статус
// в теле ответа, а не ошибка запроса
func (s *Server) handleTestReminders(c *gin.Context) {
	results, err := s.services.Notification.SendTestReminders()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
