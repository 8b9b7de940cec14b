package model

import "time"

// Feature is a unit of work inside a project, optionally scheduled into a
// run. ProjectID is denormalized so the owning project resolves in a
// single lookup even when the feature is unscheduled.
type Feature struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"size:1024"`
	Type        string    `json:"type" gorm:"size:50"`
	Status      Status    `json:"status" gorm:"size:50;default:'New'"`
	RunID       *uint     `json:"run_id,omitempty" gorm:"index"`
	Run         *Run      `json:"-" gorm:"foreignKey:RunID"`
	ProjectID   uint      `json:"project_id" gorm:"not null;index"`
	Project     Project   `json:"-" gorm:"foreignKey:ProjectID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
