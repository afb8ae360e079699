package repos

import (
  "context"

  "gorm.io/gorm"

  "github.com/cafeoi/cafeoi-backend/internal/logger"
  "github.com/cafeoi/cafeoi-backend/internal/types"
)

type AIPlanRepo interface {
  Create(ctx context.Context, tx *gorm.DB, plan *types.AIPlan) (*types.AIPlan, error)
}

type aiPlanRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAIPlanRepo(db *gorm.DB, baseLog *logger.Logger) AIPlanRepo {
  repoLog := baseLog.With("repo", "AIPlanRepo")
  return &aiPlanRepo{db: db, log: repoLog}
}

func (ar *aiPlanRepo) Create(ctx context.Context, tx *gorm.DB, plan *types.AIPlan) (*types.AIPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if err := transaction.WithContext(ctx).Create(plan).Error; err != nil {
    return nil, err
  }
  return plan, nil
}
