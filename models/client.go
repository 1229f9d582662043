package models

type Client struct {
	Id          uint   `json:"id" gorm:"primaryKey"`
	CompanyName string `json:"company_name"`
	FirstName   string `json:"first_name" gorm:"not null"`
	LastName    string `json:"last_name" gorm:"not null"`
	Email       string `json:"email" gorm:"unique;not null"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	Notes       string `json:"notes"`
	Active      bool   `json:"active" gorm:"default:true"`
}
