package notes

import (
	"github.com/google/uuid"
)

// NoteView is the renderable snapshot of one note.
type NoteView struct {
	ID             uuid.UUID  `json:"id" example:"5f0c8a52-4b8e-4b6b-9f43-1f0f3f0c2d11"`
	Title          string     `json:"title" example:"shopping"`
	Body           string     `json:"body" example:"milk"`
	AuthorUsername string     `json:"author_username" example:"will"`
	DateLabel      string     `json:"date_label" example:"2024-03-14 @ 15:09"`
	LastEditLabel  *string    `json:"last_edit_label,omitempty" example:"2024-03-14 @ 15:12"`
	Pinned         bool       `json:"pinned"`
	Minimized      bool       `json:"minimized"`
	Maximized      bool       `json:"maximized"`
	IsEditing      bool       `json:"is_editing"`
	Colour         string     `json:"colour" example:"rgb(231, 208, 244)"`
	TitleLimit     LimitState `json:"title_limit" swaggertype:"string" example:"normal"`
	BodyLimit      LimitState `json:"body_limit" swaggertype:"string" example:"normal"`
}

// ViewEvent carries the visible note list to a viewer's subscribers.
type ViewEvent struct {
	Type     string     `json:"type"` // "view"
	ViewerID uuid.UUID  `json:"viewer_id"`
	Mode     FilterMode `json:"mode"`
	Notes    []NoteView `json:"notes"`
}

// EventTypeView is the only ViewEvent type published by the store.
const EventTypeView = "view"
