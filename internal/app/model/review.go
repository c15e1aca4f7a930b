package model

import (
	"time"

	"gorm.io/gorm"
)

// Review is append-only: there is no update or delete path, so the rating
// aggregates on canteens and menu items only ever have to follow inserts.
type Review struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CanteenID  *uint     `gorm:"index" json:"canteen_id,omitempty"`
	Canteen    *Canteen  `gorm:"foreignKey:CanteenID" json:"canteen,omitempty"`
	MenuItemID *uint     `gorm:"index" json:"menu_item_id,omitempty"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

// Subject returns the tagged reference this review was written against.
func (r *Review) Subject() (ReviewSubject, error) {
	return SubjectFromRefs(r.CanteenID, r.MenuItemID)
}
