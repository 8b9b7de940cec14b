package model

import "time"

// Comment is a note attached to a to-do.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"size:4096;not null"`
	ToDoID    uint      `json:"todo_id" gorm:"not null;index"`
	ToDo      ToDo      `json:"-" gorm:"foreignKey:ToDoID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
