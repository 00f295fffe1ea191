package notes

import "github.com/google/uuid"

// CreateNoteRequest represents a note creation request. The max tags cap
// transport input only; advisory limits never reject a write.
type CreateNoteRequest struct {
	Title string `json:"title" validate:"max=4000" example:"shopping"`
	Body  string `json:"body" validate:"max=40000" example:"milk"`
}

// UpdateNoteRequest represents a note update request. Absent fields are left alone.
type UpdateNoteRequest struct {
	Title *string `json:"title,omitempty" validate:"omitempty,max=4000" example:"groceries"`
	Body  *string `json:"body,omitempty" validate:"omitempty,max=40000" example:"milk, eggs"`
}

// EditRequest names who asks for edit mode. Empty means the viewer.
type EditRequest struct {
	RequesterID string `json:"requester_id" validate:"omitempty,uuid" example:"9b7c6a57-0d7e-4b43-9a8e-e4fb0c6f1b52"`
}

// FilterRequest updates the search text and the pinned-only toggle. Absent
// fields are left alone.
type FilterRequest struct {
	Query      *string `json:"query,omitempty" validate:"omitempty,max=256" example:"shop"`
	OnlyPinned *bool   `json:"only_pinned,omitempty" example:"true"`
}

// ListNotesResponse is the visible view plus counters.
type ListNotesResponse struct {
	Mode        FilterMode `json:"mode" swaggertype:"object"`
	Notes       []NoteView `json:"notes"`
	TotalCount  int        `json:"total_count" example:"12"`
	HiddenCount int        `json:"hidden_count" example:"1"`
}

// NoteResponse wraps a single rendered note.
type NoteResponse struct {
	Note NoteView `json:"note"`
}

// MeResponse describes the viewer and their buckets.
type MeResponse struct {
	User      SerializedUser `json:"user"`
	Guest     bool           `json:"guest"`
	Pinned    []uuid.UUID    `json:"pinned_note_ids"`
	Minimized []uuid.UUID    `json:"minimized_note_ids"`
	Hidden    []uuid.UUID    `json:"hidden_note_ids"`
}

// List renders the current view for the list endpoint.
func (s *Store) List() ListNotesResponse {
	return ListNotesResponse{
		Mode:        s.Mode(),
		Notes:       s.Snapshot(),
		TotalCount:  s.Len(),
		HiddenCount: len(s.viewer.hidden),
	}
}

// Me describes the viewer.
func (s *Store) Me() MeResponse {
	u := s.viewer
	return MeResponse{
		User:      SerializeUser(u),
		Guest:     u.IsGuest(),
		Pinned:    nonNil(u.PinnedNoteIDs()),
		Minimized: nonNil(u.MinimizedNoteIDs()),
		Hidden:    nonNil(u.HiddenNoteIDs()),
	}
}

// Apply runs the present fields of req against note id.
func (req UpdateNoteRequest) Apply(s *Store, id uuid.UUID) bool {
	if _, ok := s.Note(id); !ok {
		return false
	}
	if req.Title != nil {
		s.UpdateTitle(id, *req.Title)
	}
	if req.Body != nil {
		s.UpdateBody(id, *req.Body)
	}
	return true
}

// Apply updates the filter inputs present in req.
func (req FilterRequest) Apply(s *Store) {
	if req.Query != nil {
		s.SetQuery(*req.Query)
	}
	if req.OnlyPinned != nil {
		s.SetOnlyPinned(*req.OnlyPinned)
	}
}

func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
