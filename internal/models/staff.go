package models

import "time"

const (
	StaffRoleCook    = "cook"
	StaffRoleCounter = "counter"
	StaffRoleManager = "manager"
)

type Staff struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
