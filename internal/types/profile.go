package types

import (
  "time"

  "github.com/google/uuid"
)

// Profile is the owner record for submitted ideas, keyed by email.
type Profile struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  FullName  string    `gorm:"column:full_name" json:"full_name,omitempty"`
  Plan      string    `gorm:"column:plan" json:"plan,omitempty"`
  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string {
  return "profiles"
}
