package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/cafeoi/cafeoi-backend/internal/plangen"
  "github.com/cafeoi/cafeoi-backend/internal/requestdata"
  "github.com/cafeoi/cafeoi-backend/internal/services"
)

type HistoryResponse struct {
  Items   []services.HistoryItem `json:"items"`
  Message string                 `json:"message,omitempty"`
}

type PlanHandler struct {
  planService services.PlanService
}

func NewPlanHandler(planService services.PlanService) *PlanHandler {
  return &PlanHandler{planService: planService}
}

// Generate handles POST /api/plan: validate, generate the plan document,
// persist when the store is configured, and report the persistence outcome
// on the response. Store failures never turn into non-200 responses here.
func (ph *PlanHandler) Generate(c *gin.Context) {
  var sub plangen.Submission
  if err := c.ShouldBindJSON(&sub); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  if err := sub.Validate(); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }

  plan := ph.planService.GeneratePlan(sub)

  if ph.planService.StoreConfigured() {
    rd := requestdata.GetRequestData(c.Request.Context())
    plan.Persisted, plan.PersistenceMessage = ph.planService.Persist(c.Request.Context(), sub, plan, rd)
  } else {
    plan.Persisted = false
    plan.PersistenceMessage = services.MsgPersistenceSkipped
  }

  c.JSON(http.StatusOK, plan)
}

// History handles GET /api/plan/history.
func (ph *PlanHandler) History(c *gin.Context) {
  if !ph.planService.StoreConfigured() {
    c.JSON(http.StatusOK, HistoryResponse{
      Items:   []services.HistoryItem{},
      Message: services.MsgHistoryUnavailable,
    })
    return
  }

  items, message, err := ph.planService.FetchRecent(c.Request.Context(), services.DefaultHistoryLimit)
  if err != nil {
    c.JSON(http.StatusInternalServerError, HistoryResponse{
      Items:   []services.HistoryItem{},
      Message: err.Error(),
    })
    return
  }

  c.JSON(http.StatusOK, HistoryResponse{Items: items, Message: message})
}
