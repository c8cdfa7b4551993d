package server

import (
	"github.com/gin-gonic/gin"

	"goal-tracker/internal/services"
)

// Server — JSON API поверх сервисов
type Server struct {
	services *services.ServiceManager
	router   *gin.Engine
}

func New(serviceManager *services.ServiceManager) *Server {
	router := gin.Default()

	s := &Server{
		services: serviceManager,
		router:   router,
	}

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.PATCH("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/tasks/:id/log", s.handleLogTask)
		api.POST("/tasks/reorder", s.handleReorderTasks)
		api.GET("/goal", s.handleGetGoal)
		api.POST("/goal", s.handleSetGoal)
		api.GET("/dashboard", s.handleDashboard)
		api.POST("/reminders/test", s.handleTestReminders)
	}

	return s
}

// Run запускает HTTP-сервер
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router отдаёт роутер, нужен в тестах
func (s *Server) Router() *gin.Engine {
	return s.router
}
