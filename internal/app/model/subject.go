package model

import "errors"

var (
	// ErrInvalidSubject rejects a reference that names neither a canteen nor a
	// menu item, or names both at once.
	ErrInvalidSubject = errors.New("exactly one of canteen_id or menu_item_id must be set")

	// ErrEmptyFavoriteFilter rejects a favorite filter with no constraint at all.
	ErrEmptyFavoriteFilter = errors.New("favorite filter must specify a canteen_id or a menu_item_id")
)

type SubjectKind string

const (
	SubjectCanteen  SubjectKind = "canteen"
	SubjectMenuItem SubjectKind = "menu_item"
)

// ReviewSubject is a tagged reference to the one entity a review or favorite
// is about. Reviews and favorites are persisted with two nullable columns, but
// in code the subject is always exactly one of the two kinds.
type ReviewSubject struct {
	Kind SubjectKind `json:"kind"`
	ID   uint        `json:"id"`
}

func CanteenSubject(id uint) ReviewSubject {
	return ReviewSubject{Kind: SubjectCanteen, ID: id}
}

func MenuItemSubject(id uint) ReviewSubject {
	return ReviewSubject{Kind: SubjectMenuItem, ID: id}
}

// SubjectFromRefs builds a subject from the nullable column pair used on the
// wire and in the database. Both set or neither set is invalid.
func SubjectFromRefs(canteenID, menuItemID *uint) (ReviewSubject, error) {
	switch {
	case canteenID != nil && menuItemID != nil:
		return ReviewSubject{}, ErrInvalidSubject
	case canteenID != nil:
		return CanteenSubject(*canteenID), nil
	case menuItemID != nil:
		return MenuItemSubject(*menuItemID), nil
	default:
		return ReviewSubject{}, ErrInvalidSubject
	}
}

func (s ReviewSubject) Validate() error {
	if s.ID == 0 {
		return ErrInvalidSubject
	}
	if s.Kind != SubjectCanteen && s.Kind != SubjectMenuItem {
		return ErrInvalidSubject
	}
	return nil
}

// Refs splits the subject back into the nullable column pair.
func (s ReviewSubject) Refs() (canteenID, menuItemID *uint) {
	id := s.ID
	switch s.Kind {
	case SubjectCanteen:
		return &id, nil
	case SubjectMenuItem:
		return nil, &id
	}
	return nil, nil
}

// FavoriteFilter narrows favorite lookups and deletions. Either or both
// constraints may be present; all present constraints must match.
type FavoriteFilter struct {
	CanteenID  *uint
	MenuItemID *uint
}

func (f FavoriteFilter) Validate() error {
	if f.CanteenID == nil && f.MenuItemID == nil {
		return ErrEmptyFavoriteFilter
	}
	return nil
}
