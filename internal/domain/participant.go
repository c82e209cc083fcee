package domain

import "time"

// Participant is a registered user identity. The registry is the fan-out
// target for the event-created broadcast.
type Participant struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email" json:"email,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Participant) TableName() string { return "participants" }

// Admin is an entry in the admin registry; its existence gates the
// outbound mail actions.
type Admin struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Admin) TableName() string { return "admins" }
