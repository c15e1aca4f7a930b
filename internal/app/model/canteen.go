package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// StringArray stores a list of strings as a JSON column so the same model
// works on PostgreSQL and the SQLite test database.
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("failed to scan StringArray")
	}
}

type Canteen struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Location    string      `gorm:"not null;index" json:"location"`
	ImageURL    string      `json:"image_url"`
	OpenTime    string      `gorm:"type:varchar(10);not null" json:"open_time"`  // e.g. "08:00"
	CloseTime   string      `gorm:"type:varchar(10);not null" json:"close_time"` // e.g. "20:00"
	IsOpen      bool        `gorm:"default:true" json:"is_open"`
	Tags        StringArray `gorm:"type:text" json:"tags,omitempty"`

	// Derived columns, owned by the review service. Clients never write these;
	// they are overwritten by a full recompute whenever a review is created.
	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	MenuItems []MenuItem `gorm:"foreignKey:CanteenID;constraint:OnDelete:CASCADE" json:"menu_items,omitempty"`
}

func (Canteen) TableName() string {
	return "canteens"
}
