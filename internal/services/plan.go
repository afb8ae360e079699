package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/cafeoi/cafeoi-backend/internal/logger"
  "github.com/cafeoi/cafeoi-backend/internal/plangen"
  "github.com/cafeoi/cafeoi-backend/internal/repos"
  "github.com/cafeoi/cafeoi-backend/internal/requestdata"
  "github.com/cafeoi/cafeoi-backend/internal/types"
)

const DefaultHistoryLimit = 10

// User-facing messages for the two non-error persistence outcomes.
const (
  MsgPlanPersisted      = "Plan saved to the Supabase database."
  MsgPersistenceSkipped = "Persistence skipped because the Supabase configuration is missing."
  MsgHistoryUnavailable = "Plan history is unavailable because the Supabase configuration is missing."
  MsgHistoryEmpty       = "No plan history has been recorded yet."
)

// HistoryPlan is the stored plan as returned by the history endpoint.
type HistoryPlan struct {
  Summary        string                `json:"summary"`
  Architecture   []string              `json:"architecture"`
  DatabaseSchema []plangen.SchemaTable `json:"databaseSchema"`
  Roadmap        []string              `json:"roadmap"`
  ExportOptions  []string              `json:"exportOptions"`
  CreatedAt      time.Time             `json:"createdAt"`
}

// HistoryItem is one idea+plan pair; Plan is nil when the plan insert
// failed for that idea.
type HistoryItem struct {
  IdeaID     uint         `json:"ideaId"`
  CreatedAt  time.Time    `json:"createdAt"`
  Problem    string       `json:"problem"`
  TargetUser string       `json:"targetUser"`
  Solution   string       `json:"solution"`
  Plan       *HistoryPlan `json:"plan,omitempty"`
}

type PlanService interface {
  GeneratePlan(sub plangen.Submission) plangen.PlanDocument
  Persist(ctx context.Context, sub plangen.Submission, plan plangen.PlanDocument, rd *requestdata.RequestData) (bool, string)
  FetchRecent(ctx context.Context, limit int) ([]HistoryItem, string, error)
  StoreConfigured() bool
}

type planService struct {
  db          *gorm.DB
  log         *logger.Logger
  profileRepo repos.ProfileRepo
  ideaRepo    repos.IdeaRepo
  planRepo    repos.AIPlanRepo
}

// NewPlanService wires the gateway. db may be nil when the store is not
// configured; StoreConfigured then reports false and the caller must skip
// Persist/FetchRecent entirely.
func NewPlanService(db *gorm.DB, log *logger.Logger, profileRepo repos.ProfileRepo, ideaRepo repos.IdeaRepo, planRepo repos.AIPlanRepo) PlanService {
  serviceLog := log.With("service", "PlanService")
  return &planService{
    db:          db,
    log:         serviceLog,
    profileRepo: profileRepo,
    ideaRepo:    ideaRepo,
    planRepo:    planRepo,
  }
}

func (ps *planService) StoreConfigured() bool {
  return ps.db != nil
}

func (ps *planService) GeneratePlan(sub plangen.Submission) plangen.PlanDocument {
  return plangen.Generate(sub)
}

// Persist runs the three store writes strictly in order: profile upsert,
// idea insert, plan insert. The first failure aborts the rest and becomes
// the user-facing message; earlier writes are deliberately left in place.
func (ps *planService) Persist(ctx context.Context, sub plangen.Submission, plan plangen.PlanDocument, rd *requestdata.RequestData) (bool, string) {
  if rd == nil {
    rd = requestdata.Default()
  }

  profileID, err := ps.profileRepo.UpsertByEmail(ctx, nil, rd.Email, rd.FullName, rd.PlanOverride)
  if err != nil {
    ps.log.Error("Profile upsert failed", "email", rd.Email, "error", err)
    return false, fmt.Sprintf("could not save profile: %v", err)
  }

  idea := &types.Idea{
    UserID:     profileID,
    Problem:    sub.Problem,
    TargetUser: sub.TargetUser,
    Solution:   sub.Solution,
    Status:     types.IdeaStatusPlanned,
  }
  idea, err = ps.ideaRepo.Create(ctx, nil, idea)
  if err != nil {
    ps.log.Error("Idea insert failed", "email", rd.Email, "error", err)
    return false, fmt.Sprintf("could not save idea: %v", err)
  }

  planRow, err := buildPlanRow(idea.ID, plan)
  if err != nil {
    ps.log.Error("Plan row encoding failed", "idea_id", idea.ID, "error", err)
    return false, fmt.Sprintf("could not save plan: %v", err)
  }
  if _, err := ps.planRepo.Create(ctx, nil, planRow); err != nil {
    ps.log.Error("Plan insert failed", "idea_id", idea.ID, "error", err)
    return false, fmt.Sprintf("could not save plan: %v", err)
  }

  return true, MsgPlanPersisted
}

// FetchRecent returns the newest idea+plan pairs. An empty store is not an
// error; it comes back as an empty list with an informational message.
func (ps *planService) FetchRecent(ctx context.Context, limit int) ([]HistoryItem, string, error) {
  if limit <= 0 {
    limit = DefaultHistoryLimit
  }

  ideas, err := ps.ideaRepo.ListRecent(ctx, nil, limit)
  if err != nil {
    ps.log.Error("History fetch failed", "error", err)
    return []HistoryItem{}, "", fmt.Errorf("could not load plan history: %w", err)
  }

  items := make([]HistoryItem, 0, len(ideas))
  for _, idea := range ideas {
    item := HistoryItem{
      IdeaID:     idea.ID,
      CreatedAt:  idea.CreatedAt,
      Problem:    idea.Problem,
      TargetUser: idea.TargetUser,
      Solution:   idea.Solution,
    }
    if idea.Plan != nil {
      item.Plan = ps.decodePlanRow(idea.Plan)
    }
    items = append(items, item)
  }

  message := ""
  if len(items) == 0 {
    message = MsgHistoryEmpty
  }
  return items, message, nil
}

func buildPlanRow(ideaID uint, plan plangen.PlanDocument) (*types.AIPlan, error) {
  architecture, err := json.Marshal(plan.Architecture)
  if err != nil {
    return nil, err
  }
  schema, err := json.Marshal(plan.DatabaseSchema)
  if err != nil {
    return nil, err
  }
  roadmap, err := json.Marshal(plan.Roadmap)
  if err != nil {
    return nil, err
  }
  exportOptions, err := json.Marshal(plan.ExportOptions)
  if err != nil {
    return nil, err
  }
  return &types.AIPlan{
    IdeaID:         ideaID,
    Summary:        plan.Summary,
    Architecture:   datatypes.JSON(architecture),
    DatabaseSchema: datatypes.JSON(schema),
    Roadmap:        datatypes.JSON(roadmap),
    ExportOptions:  datatypes.JSON(exportOptions),
  }, nil
}

// decodePlanRow unpacks the jsonb columns. A column that fails to decode is
// logged and returned empty rather than failing the whole history read.
func (ps *planService) decodePlanRow(row *types.AIPlan) *HistoryPlan {
  plan := &HistoryPlan{
    Summary:        row.Summary,
    Architecture:   []string{},
    DatabaseSchema: []plangen.SchemaTable{},
    Roadmap:        []string{},
    ExportOptions:  []string{},
    CreatedAt:      row.CreatedAt,
  }
  ps.decodeJSONColumn(row.IdeaID, "architecture", row.Architecture, &plan.Architecture)
  ps.decodeJSONColumn(row.IdeaID, "database_schema", row.DatabaseSchema, &plan.DatabaseSchema)
  ps.decodeJSONColumn(row.IdeaID, "roadmap", row.Roadmap, &plan.Roadmap)
  ps.decodeJSONColumn(row.IdeaID, "export_options", row.ExportOptions, &plan.ExportOptions)
  return plan
}

func (ps *planService) decodeJSONColumn(ideaID uint, column string, raw datatypes.JSON, dst interface{}) {
  if len(raw) == 0 {
    return
  }
  if err := json.Unmarshal(raw, dst); err != nil {
    ps.log.Warn("Failed to decode stored plan column", "idea_id", ideaID, "column", column, "error", err)
  }
}
