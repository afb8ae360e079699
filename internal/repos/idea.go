package repos

import (
  "context"

  "gorm.io/gorm"

  "github.com/cafeoi/cafeoi-backend/internal/logger"
  "github.com/cafeoi/cafeoi-backend/internal/types"
)

type IdeaRepo interface {
  Create(ctx context.Context, tx *gorm.DB, idea *types.Idea) (*types.Idea, error)
  ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Idea, error)
}

type ideaRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewIdeaRepo(db *gorm.DB, baseLog *logger.Logger) IdeaRepo {
  repoLog := baseLog.With("repo", "IdeaRepo")
  return &ideaRepo{db: db, log: repoLog}
}

func (ir *ideaRepo) Create(ctx context.Context, tx *gorm.DB, idea *types.Idea) (*types.Idea, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  if err := transaction.WithContext(ctx).Create(idea).Error; err != nil {
    return nil, err
  }
  return idea, nil
}

// ListRecent returns the newest ideas with their plan preloaded. Ideas whose
// plan insert failed come back with a nil Plan; the id is the tie-breaker
// for rows created within the same timestamp.
func (ir *ideaRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Idea, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var results []*types.Idea
  if err := transaction.WithContext(ctx).
    Preload("Plan").
    Order("created_at DESC, id DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
