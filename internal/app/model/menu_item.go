package model

import (
	"time"

	"gorm.io/gorm"
)

type MenuItem struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	CanteenID   uint    `gorm:"not null;index" json:"canteen_id"`
	Canteen     Canteen `gorm:"foreignKey:CanteenID" json:"canteen,omitempty"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `gorm:"type:varchar(50);index" json:"category"`
	IsAvailable bool    `gorm:"default:true" json:"is_available"`

	// Derived columns, same rule as Canteen: written only by rating recompute.
	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
