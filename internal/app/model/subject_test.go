package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectFromRefs(t *testing.T) {
	canteenID := uint(3)
	menuItemID := uint(7)

	tests := []struct {
		name       string
		canteenID  *uint
		menuItemID *uint
		want       ReviewSubject
		wantErr    bool
	}{
		{name: "canteen only", canteenID: &canteenID, want: CanteenSubject(3)},
		{name: "menu item only", menuItemID: &menuItemID, want: MenuItemSubject(7)},
		{name: "both set", canteenID: &canteenID, menuItemID: &menuItemID, wantErr: true},
		{name: "neither set", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := SubjectFromRefs(tt.canteenID, tt.menuItemID)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSubject)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, subject)
		})
	}
}

func TestReviewSubject_Refs_RoundTrip(t *testing.T) {
	for _, subject := range []ReviewSubject{CanteenSubject(11), MenuItemSubject(42)} {
		back, err := SubjectFromRefs(subject.Refs())
		require.NoError(t, err)
		assert.Equal(t, subject, back)
	}
}

func TestReviewSubject_Validate(t *testing.T) {
	assert.NoError(t, CanteenSubject(1).Validate())
	assert.NoError(t, MenuItemSubject(1).Validate())

	assert.ErrorIs(t, ReviewSubject{}.Validate(), ErrInvalidSubject)
	assert.ErrorIs(t, CanteenSubject(0).Validate(), ErrInvalidSubject)
	assert.ErrorIs(t, ReviewSubject{Kind: "store", ID: 1}.Validate(), ErrInvalidSubject)
}

func TestFavoriteFilter_Validate(t *testing.T) {
	id := uint(1)

	assert.ErrorIs(t, FavoriteFilter{}.Validate(), ErrEmptyFavoriteFilter)
	assert.NoError(t, FavoriteFilter{CanteenID: &id}.Validate())
	assert.NoError(t, FavoriteFilter{MenuItemID: &id}.Validate())
	assert.NoError(t, FavoriteFilter{CanteenID: &id, MenuItemID: &id}.Validate())
}
