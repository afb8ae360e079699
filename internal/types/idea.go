package types

import (
  "time"

  "github.com/google/uuid"
)

const IdeaStatusPlanned = "planned"

// Idea is one submitted problem/target-user/solution triple. Rows are
// append-only; nothing in the service updates or deletes them.
type Idea struct {
  ID         uint      `gorm:"primaryKey" json:"id"`
  UserID     uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
  Profile    *Profile  `gorm:"foreignKey:UserID;references:ID" json:"-"`
  Problem    string    `gorm:"not null;column:problem" json:"problem"`
  TargetUser string    `gorm:"not null;column:target_user" json:"target_user"`
  Solution   string    `gorm:"not null;column:solution" json:"solution"`
  Status     string    `gorm:"not null;column:status" json:"status"`
  Plan       *AIPlan   `gorm:"foreignKey:IdeaID" json:"plan,omitempty"`
  CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
}

func (Idea) TableName() string {
  return "ideas"
}
