package models

import "time"

// Client is an address-book entry used to prefill draft headers.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Address   string    `gorm:"size:500" json:"address,omitempty"`
	Company   string    `gorm:"size:255" json:"company,omitempty"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
