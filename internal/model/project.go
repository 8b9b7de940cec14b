package model

import "time"

// Project is the root of the entity hierarchy. Its member set is the
// authorization boundary for everything beneath it.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"size:1024"`
	DueDate     time.Time `json:"due_date" gorm:"not null"`
	Status      Status    `json:"status" gorm:"size:50;default:'New'"`
	CreatorID   uint      `json:"creator_id" gorm:"not null"`
	Creator     User      `json:"creator" gorm:"foreignKey:CreatorID"`
	Members     []User    `json:"members" gorm:"many2many:project_members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasMember reports whether the given email belongs to the project's
// member set. Email is the identity key; first match wins.
func (p *Project) HasMember(email string) bool {
	for _, m := range p.Members {
		if m.Email == email {
			return true
		}
	}
	return false
}
