package types

import (
  "time"

  "gorm.io/datatypes"
)

// AIPlan stores the generated plan document for one idea. The list fields
// are kept as jsonb so history reads return them as structured values.
type AIPlan struct {
  ID             uint           `gorm:"primaryKey" json:"id"`
  IdeaID         uint           `gorm:"not null;index;column:idea_id" json:"idea_id"`
  Summary        string         `gorm:"not null;column:summary" json:"summary"`
  Architecture   datatypes.JSON `gorm:"type:jsonb;column:architecture" json:"architecture"`
  DatabaseSchema datatypes.JSON `gorm:"type:jsonb;column:database_schema" json:"database_schema"`
  Roadmap        datatypes.JSON `gorm:"type:jsonb;column:roadmap" json:"roadmap"`
  ExportOptions  datatypes.JSON `gorm:"type:jsonb;column:export_options" json:"export_options"`
  CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
}

func (AIPlan) TableName() string {
  return "ai_plans"
}
