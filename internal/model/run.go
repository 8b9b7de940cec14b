package model

import "time"

// Run is an iteration inside a project.
type Run struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"size:1024"`
	StartDate   time.Time  `json:"start_date" gorm:"not null"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Status      Status     `json:"status" gorm:"size:50;default:'New'"`
	ProjectID   uint       `json:"project_id" gorm:"not null;index"`
	Project     Project    `json:"-" gorm:"foreignKey:ProjectID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
