package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/cafeoi/cafeoi-backend/internal/logger"
  "github.com/cafeoi/cafeoi-backend/internal/types"
)

type ProfileRepo interface {
  UpsertByEmail(ctx context.Context, tx *gorm.DB, email, fullName, planOverride string) (uuid.UUID, error)
  GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Profile, error)
}

type profileRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
  repoLog := baseLog.With("repo", "ProfileRepo")
  return &profileRepo{db: db, log: repoLog}
}

// UpsertByEmail creates the profile row or updates the existing one keyed by
// email, then resolves the stored id. fullName and planOverride are only
// written when non-empty.
func (pr *profileRepo) UpsertByEmail(ctx context.Context, tx *gorm.DB, email, fullName, planOverride string) (uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  profile := &types.Profile{ID: uuid.New(), Email: email}
  updates := []string{"updated_at"}
  if fullName != "" {
    profile.FullName = fullName
    updates = append(updates, "full_name")
  }
  if planOverride != "" {
    profile.Plan = planOverride
    updates = append(updates, "plan")
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "email"}},
      DoUpdates: clause.AssignmentColumns(updates),
    }).
    Create(profile).Error; err != nil {
    return uuid.Nil, err
  }

  saved, err := pr.GetByEmail(ctx, transaction, email)
  if err != nil {
    return uuid.Nil, err
  }
  return saved.ID, nil
}

func (pr *profileRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Profile, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.Profile
  if err := transaction.WithContext(ctx).
    Where("email = ?", email).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}
