package main

import (
  "errors"
  "fmt"
  "os"

  "gorm.io/gorm"

  "github.com/cafeoi/cafeoi-backend/internal/db"
  "github.com/cafeoi/cafeoi-backend/internal/handlers"
  "github.com/cafeoi/cafeoi-backend/internal/logger"
  "github.com/cafeoi/cafeoi-backend/internal/repos"
  "github.com/cafeoi/cafeoi-backend/internal/server"
  "github.com/cafeoi/cafeoi-backend/internal/services"
  "github.com/cafeoi/cafeoi-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  port := utils.GetEnv("PORT", "8080", log)

  // Postgres (optional; the service runs without persistence when the
  // Supabase settings are absent)
  var storeDB *gorm.DB
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    if errors.Is(err, db.ErrNotConfigured) {
      log.Warn("Supabase configuration missing, persistence disabled")
    } else {
      log.Warn("Postgres init failed, persistence disabled", "error", err)
    }
  } else {
    if err := postgresService.AutoMigrateAll(); err != nil {
      log.Warn("Postgres auto migration failed", "error", err)
    }
    storeDB = postgresService.DB()
  }

  // Repos
  profileRepo := repos.NewProfileRepo(storeDB, log)
  ideaRepo := repos.NewIdeaRepo(storeDB, log)
  planRepo := repos.NewAIPlanRepo(storeDB, log)

  // Services
  planService := services.NewPlanService(storeDB, log, profileRepo, ideaRepo, planRepo)

  // Handlers
  planHandler := handlers.NewPlanHandler(planService)

  // Router
  router := server.NewRouter(server.RouterConfig{
    PlanHandler: planHandler,
  })

  log.Info("Starting server...", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server failed", "error", err)
  }
}
