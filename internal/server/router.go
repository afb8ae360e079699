package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/cafeoi/cafeoi-backend/internal/handlers"
  "github.com/cafeoi/cafeoi-backend/internal/middleware"
)

type RouterConfig struct {
  PlanHandler *handlers.PlanHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods: []string{"GET", "POST", "OPTIONS"},
    AllowHeaders: []string{
      "Content-Type",
      "X-Requested-With",
      "X-Cafeoi-Email",
      "X-Cafeoi-Name",
      "X-Cafeoi-Plan",
    },
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  api.Use(middleware.ProfileMetadata())
  {
    api.POST("/plan", cfg.PlanHandler.Generate)
    api.GET("/plan/history", cfg.PlanHandler.History)
  }

  return router
}
