package notes

import (
	"slices"

	"pastel-notes/internal/utils/timedate"

	"github.com/google/uuid"
)

// User is a note author and viewer. Besides identity it carries the viewer's
// buckets: ordered sets of note ids the viewer pinned, minimized or hid.
type User struct {
	Username     string
	CreationDate timedate.TimeDate
	ID           uuid.UUID
	Guest        bool

	pinned    []uuid.UUID
	minimized []uuid.UUID
	hidden    []uuid.UUID
}

// NewUser creates a registered user.
func NewUser(username string) *User {
	return &User{
		Username:     username,
		CreationDate: timedate.Now(),
		ID:           uuid.New(),
	}
}

// NewGuest creates an anonymous user. Guests cannot create notes.
func NewGuest() *User {
	return &User{
		CreationDate: timedate.Now(),
		ID:           uuid.New(),
		Guest:        true,
	}
}

// IsGuest reports whether u is a guest.
func (u *User) IsGuest() bool {
	return u.Guest
}

// Equal compares identity only; bucket contents are irrelevant.
func (u *User) Equal(o *User) bool {
	if u == nil || o == nil {
		return u == o
	}
	return u.ID == o.ID
}

// PinnedNoteIDs returns a copy of the pinned bucket.
func (u *User) PinnedNoteIDs() []uuid.UUID { return slices.Clone(u.pinned) }

// MinimizedNoteIDs returns a copy of the minimized bucket.
func (u *User) MinimizedNoteIDs() []uuid.UUID { return slices.Clone(u.minimized) }

// HiddenNoteIDs returns a copy of the hidden bucket.
func (u *User) HiddenNoteIDs() []uuid.UUID { return slices.Clone(u.hidden) }

// HasPinned reports whether id is in the pinned bucket.
func (u *User) HasPinned(id uuid.UUID) bool { return slices.Contains(u.pinned, id) }

// HasMinimized reports whether id is in the minimized bucket.
func (u *User) HasMinimized(id uuid.UUID) bool { return slices.Contains(u.minimized, id) }

// HasHidden reports whether id is in the hidden bucket.
func (u *User) HasHidden(id uuid.UUID) bool { return slices.Contains(u.hidden, id) }

func (u *User) addPinned(id uuid.UUID) bool       { return addID(&u.pinned, id) }
func (u *User) removePinned(id uuid.UUID) bool    { return removeID(&u.pinned, id) }
func (u *User) addMinimized(id uuid.UUID) bool    { return addID(&u.minimized, id) }
func (u *User) removeMinimized(id uuid.UUID) bool { return removeID(&u.minimized, id) }
func (u *User) addHidden(id uuid.UUID) bool       { return addID(&u.hidden, id) }
func (u *User) removeHidden(id uuid.UUID) bool    { return removeID(&u.hidden, id) }

// forget drops id from every bucket.
func (u *User) forget(id uuid.UUID) {
	u.removePinned(id)
	u.removeMinimized(id)
	u.removeHidden(id)
}

// addID appends id unless already present.
func addID(bucket *[]uuid.UUID, id uuid.UUID) bool {
	if slices.Contains(*bucket, id) {
		return false
	}
	*bucket = append(*bucket, id)
	return true
}

func removeID(bucket *[]uuid.UUID, id uuid.UUID) bool {
	before := len(*bucket)
	*bucket = slices.DeleteFunc(*bucket, func(x uuid.UUID) bool { return x == id })
	return len(*bucket) != before
}
