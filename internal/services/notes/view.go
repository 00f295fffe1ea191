package notes

import (
	"github.com/google/uuid"
)

// Snapshot renders the visible notes in display order.
func (s *Store) Snapshot() []NoteView {
	return s.render(s.Visible())
}

// Event wraps the current snapshot for subscribers.
func (s *Store) Event() ViewEvent {
	return s.viewEvent(s.Visible(), s.Mode())
}

// View renders a single note regardless of filters.
func (s *Store) View(id uuid.UUID) (NoteView, bool) {
	n, ok := s.notes[id]
	if !ok {
		return NoteView{}, false
	}
	return s.viewOf(n), true
}

func (s *Store) viewEvent(visible []*Note, mode FilterMode) ViewEvent {
	return ViewEvent{
		Type:     EventTypeView,
		ViewerID: s.viewer.ID,
		Mode:     mode,
		Notes:    s.render(visible),
	}
}

func (s *Store) render(notes []*Note) []NoteView {
	out := make([]NoteView, 0, len(notes))
	for _, n := range notes {
		out = append(out, s.viewOf(n))
	}
	return out
}

// viewOf reads every rendered cell, so a watcher re-renders on any of them.
func (s *Store) viewOf(n *Note) NoteView {
	now := s.clock().Time()
	title := n.Title.Get()
	body := n.Body.Get()

	v := NoteView{
		ID:             n.ID,
		Title:          title,
		Body:           body,
		AuthorUsername: n.Author.Username,
		DateLabel:      n.CreatedAt.FormatDateTimeAt(now),
		Pinned:         n.Pinned.Get(),
		Minimized:      n.Minimized.Get(),
		Maximized:      n.Maximized.Get(),
		IsEditing:      n.IsEditing.Get(),
		Colour:         n.Colour,
		TitleLimit:     TextLimitState(title, TitleCharLimit),
		BodyLimit:      TextLimitState(body, BodyCharLimit),
	}
	if edit := n.LastEdit.Get(); edit.Valid {
		label := edit.TimeDate.FormatDateTimeAt(now)
		v.LastEditLabel = &label
	}
	return v
}
