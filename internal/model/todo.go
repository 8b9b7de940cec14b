package model

import "time"

// ToDo is a task or bug attached to a feature.
type ToDo struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Type        ToDoType  `json:"type" gorm:"size:50;not null"`
	Description string    `json:"description" gorm:"size:1024"`
	Status      Status    `json:"status" gorm:"size:50;default:'New'"`
	FeatureID   uint      `json:"feature_id" gorm:"not null;index"`
	Feature     Feature   `json:"-" gorm:"foreignKey:FeatureID"`
	AssigneeID  *uint     `json:"assignee_id,omitempty"`
	Assignee    *User     `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
