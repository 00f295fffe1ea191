package notes

import (
	"fmt"
	"math/rand/v2"

	"pastel-notes/internal/reactive"
	"pastel-notes/internal/utils/timedate"

	"github.com/google/uuid"
)

// Advisory lengths, in runes. Exceeding them changes LimitState only.
const (
	TitleCharLimit = 100
	BodyCharLimit  = 1000
)

// Note is a sticky note. Text and display flags are cells so derived views and
// effects follow them; identity, author, creation time and colour never change.
type Note struct {
	ID        uuid.UUID
	Author    *User
	CreatedAt timedate.TimeDate
	Colour    string

	Title     *reactive.Cell[string]
	Body      *reactive.Cell[string]
	LastEdit  *reactive.Cell[timedate.Null]
	Pinned    *reactive.Cell[bool]
	Maximized *reactive.Cell[bool]
	Minimized *reactive.Cell[bool]
	IsEditing *reactive.Cell[bool]

	clock func() timedate.TimeDate
}

// NewNote creates an empty note by author.
func NewNote(rt *reactive.Runtime, author *User) *Note {
	return NewNoteWithText(rt, "", author, "")
}

// NewNoteWithText creates a note with the given title and body.
func NewNoteWithText(rt *reactive.Runtime, title string, author *User, body string) *Note {
	return newNote(rt, noteSeed{
		id:        uuid.New(),
		title:     title,
		body:      body,
		author:    author,
		createdAt: timedate.Now(),
		colour:    PastelColour(),
	}, timedate.Now)
}

type noteSeed struct {
	id        uuid.UUID
	title     string
	body      string
	author    *User
	createdAt timedate.TimeDate
	lastEdit  timedate.Null
	colour    string
}

func newNote(rt *reactive.Runtime, s noteSeed, clock func() timedate.TimeDate) *Note {
	return &Note{
		ID:        s.id,
		Author:    s.author,
		CreatedAt: s.createdAt,
		Colour:    s.colour,
		Title:     reactive.NewCell(rt, s.title),
		Body:      reactive.NewCell(rt, s.body),
		LastEdit:  reactive.NewCell(rt, s.lastEdit),
		Pinned:    reactive.NewCell(rt, false),
		Maximized: reactive.NewCell(rt, false),
		Minimized: reactive.NewCell(rt, false),
		IsEditing: reactive.NewCell(rt, false),
		clock:     clock,
	}
}

// Equal compares identity only.
func (n *Note) Equal(o *Note) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.ID == o.ID
}

// UpdateTitle stores text verbatim and stamps the edit time. Length is not enforced.
func (n *Note) UpdateTitle(text string) {
	n.Title.Set(text)
	n.touch()
}

// UpdateBody stores text verbatim and stamps the edit time. Length is not enforced.
func (n *Note) UpdateBody(text string) {
	n.Body.Set(text)
	n.touch()
}

func (n *Note) touch() {
	n.LastEdit.Set(timedate.Some(n.clock()))
}

// TogglePinned flips the pinned flag.
func (n *Note) TogglePinned() { n.Pinned.Update(not) }

// ToggleMaximized flips the maximized flag. Focus is the store's concern.
func (n *Note) ToggleMaximized() { n.Maximized.Update(not) }

// ToggleMinimized flips the minimized flag.
func (n *Note) ToggleMinimized() { n.Minimized.Update(not) }

// ToggleEditing flips edit mode without checking who asked.
func (n *Note) ToggleEditing() { n.IsEditing.Update(not) }

// Unmaximize forces the note out of the maximized view.
func (n *Note) Unmaximize() { n.Maximized.Set(false) }

// Unedit forces the note out of edit mode.
func (n *Note) Unedit() { n.IsEditing.Set(false) }

func not(b bool) bool { return !b }

// PastelColour returns a CSS rgb() colour with every channel in [200, 255].
func PastelColour() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", pastelChannel(), pastelChannel(), pastelChannel())
}

func pastelChannel() int {
	return 200 + rand.IntN(56)
}
