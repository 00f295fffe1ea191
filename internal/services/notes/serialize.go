package notes

import (
	"pastel-notes/internal/reactive"
	"pastel-notes/internal/utils/timedate"

	"github.com/google/uuid"
)

// SerializedUser is the persisted form of a User. Buckets and guest mode are
// session state and are not stored.
type SerializedUser struct {
	Username     string            `json:"username" validate:"max=64" example:"will"`
	CreationDate timedate.TimeDate `json:"creation_date" swaggertype:"object"`
	ID           uuid.UUID         `json:"id" validate:"required" swaggertype:"string" example:"9b7c6a57-0d7e-4b43-9a8e-e4fb0c6f1b52"`
}

// SerializedNote is the persisted form of a Note. Display flags, edit mode and
// colour are dropped.
type SerializedNote struct {
	ID        uuid.UUID          `json:"id" validate:"required" swaggertype:"string" example:"5f0c8a52-4b8e-4b6b-9f43-1f0f3f0c2d11"`
	Title     string             `json:"title" example:"shopping"`
	Body      string             `json:"body" example:"milk"`
	Author    SerializedUser     `json:"author" validate:"required"`
	CreatedAt timedate.TimeDate  `json:"created_at" swaggertype:"object"`
	LastEdit  *timedate.TimeDate `json:"last_edit,omitempty" swaggertype:"object"`
}

// SerializeUser snapshots u.
func SerializeUser(u *User) SerializedUser {
	return SerializedUser{
		Username:     u.Username,
		CreationDate: u.CreationDate,
		ID:           u.ID,
	}
}

// IntoUser rebuilds a registered user with empty buckets.
func (s SerializedUser) IntoUser() *User {
	return &User{
		Username:     s.Username,
		CreationDate: s.CreationDate,
		ID:           s.ID,
		Guest:        false,
	}
}

// Serialize snapshots the current cell values of n without tracking them.
func (n *Note) Serialize() SerializedNote {
	return SerializedNote{
		ID:        n.ID,
		Title:     n.Title.Peek(),
		Body:      n.Body.Peek(),
		Author:    SerializeUser(n.Author),
		CreatedAt: n.CreatedAt,
		LastEdit:  n.LastEdit.Peek().Ptr(),
	}
}

// IntoNote rebuilds a note on rt. Flags start false and a new colour is drawn.
// A nil author is rebuilt from s.Author.
func (s SerializedNote) IntoNote(rt *reactive.Runtime, author *User) *Note {
	return s.intoNote(rt, author, timedate.Now, PastelColour)
}

func (s SerializedNote) intoNote(rt *reactive.Runtime, author *User, clock func() timedate.TimeDate, colour func() string) *Note {
	if author == nil {
		author = s.Author.IntoUser()
	}
	return newNote(rt, noteSeed{
		id:        s.ID,
		title:     s.Title,
		body:      s.Body,
		author:    author,
		createdAt: s.CreatedAt,
		lastEdit:  timedate.NullFromPtr(s.LastEdit),
		colour:    colour(),
	}, clock)
}
