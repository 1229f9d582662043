package models

import "time"

// Project statuses.
const (
	ProjectDraft     = "draft"
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectArchived  = "archived"
)

type Project struct {
	Id          uint       `json:"id" gorm:"primaryKey"`
	CId         uint       `json:"-"`
	Client      Client     `json:"client" gorm:"foreignKey:CId;references:Id"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:draft"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Budget      float64    `json:"budget" gorm:"type:numeric(12,2)"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
