package model

import "time"

// Favorite marks a (user, canteen) or (user, menu item) pair. The composite
// unique indexes are the real uniqueness guarantee: a concurrent double
// submit resolves at the database, not in application code. NULLs never
// collide in either index, so a canteen favorite and a menu-item favorite for
// the same user coexist. Rows are hard-deleted — a soft-deleted row would
// keep occupying the unique index and block re-adding.
type Favorite struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_fav_user_canteen,unique;index:idx_fav_user_menu_item,unique" json:"user_id"`
	CanteenID  *uint     `gorm:"index:idx_fav_user_canteen,unique" json:"canteen_id,omitempty"`
	Canteen    *Canteen  `gorm:"foreignKey:CanteenID" json:"canteen,omitempty"`
	MenuItemID *uint     `gorm:"index:idx_fav_user_menu_item,unique" json:"menu_item_id,omitempty"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// Subject returns the tagged reference this favorite points at.
func (f *Favorite) Subject() (ReviewSubject, error) {
	return SubjectFromRefs(f.CanteenID, f.MenuItemID)
}
