package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business is the contractor's company profile, created at registration.
// It lives in the public schema and owns the tenant schema name.
type Business struct {
	Id          string `json:"id" gorm:"primaryKey"`
	CompanyName string `json:"company_name" gorm:"not null;unique"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Zip         string `json:"zip"`
	Phone       string `json:"phone"`
	Homepage    string `json:"homepage"`
	TaxId       string `json:"tax_id"`
	UserId      string `json:"-"`
	User        User   `json:"user" gorm:"foreignKey:UserId;references:Id"`
	SchemaName  string `json:"-"`
}

func (business *Business) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	business.Id = uuid.NewString()
	return
}
