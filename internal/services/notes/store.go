package notes

import (
	"context"
	"errors"
	"log/slog"

	"pastel-notes/internal/reactive"
	"pastel-notes/internal/utils/sanitize"
	"pastel-notes/internal/utils/timedate"

	"github.com/google/uuid"
)

// Store owns the canonical note collection of one session together with the
// viewer, the filter inputs and the focus state. All methods must be called
// from a single goroutine; Loop provides that for concurrent callers.
type Store struct {
	rt          *reactive.Runtime
	log         *slog.Logger
	viewer      *User
	persistence Persistence
	bus         Bus
	clock       func() timedate.TimeDate
	colour      func() string

	users       map[uuid.UUID]*User
	notes       map[uuid.UUID]*Note
	order       []uuid.UUID
	noteEffects map[uuid.UUID][]*reactive.Effect

	members *reactive.Trigger
	hidden  *reactive.Trigger

	onlyPinned *reactive.Cell[bool]
	query      *reactive.Cell[string]
	mode       *reactive.Cell[FilterMode]

	focusedMaximized *reactive.Cell[uuid.NullUUID]
	focusedEditing   *reactive.Cell[uuid.NullUUID]

	visible *reactive.Memo[[]*Note]
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces timedate.Now for creation and edit stamps.
func WithClock(clock func() timedate.TimeDate) Option {
	return func(s *Store) { s.clock = clock }
}

// WithColour replaces the pastel colour generator.
func WithColour(colour func() string) Option {
	return func(s *Store) { s.colour = colour }
}

// WithPersistence sets the mirror notes are saved to after create and edit.
func WithPersistence(p Persistence) Option {
	return func(s *Store) { s.persistence = p }
}

// WithBus publishes a ViewEvent to bus whenever the visible view changes.
func WithBus(bus Bus) Option {
	return func(s *Store) { s.bus = bus }
}

// WithRuntime runs the store on an existing runtime.
func WithRuntime(rt *reactive.Runtime) Option {
	return func(s *Store) { s.rt = rt }
}

// NewStore resolves the viewer from session and wires the derived view.
// When no viewer can be resolved the store runs for a guest.
func NewStore(session SessionProvider, log *slog.Logger, opts ...Option) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Store{
		log:         log,
		persistence: UnimplementedPersistence{},
		clock:       timedate.Now,
		colour:      PastelColour,
		users:       make(map[uuid.UUID]*User),
		notes:       make(map[uuid.UUID]*Note),
		noteEffects: make(map[uuid.UUID][]*reactive.Effect),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rt == nil {
		s.rt = reactive.NewRuntime(log)
	}

	s.viewer = s.resolveViewer(session)
	s.users[s.viewer.ID] = s.viewer

	rt := s.rt
	s.members = reactive.NewTrigger(rt)
	s.hidden = reactive.NewTrigger(rt)
	s.onlyPinned = reactive.NewCell(rt, false)
	s.query = reactive.NewCell(rt, "")
	s.mode = reactive.NewCell(rt, Normal())
	s.focusedMaximized = reactive.NewCell(rt, uuid.NullUUID{})
	s.focusedEditing = reactive.NewCell(rt, uuid.NullUUID{})

	reactive.NewEffect(rt, func() {
		s.mode.Set(ModeFor(s.onlyPinned.Get(), s.query.Get()))
	})
	s.visible = reactive.NewMemo(rt, s.deriveVisible)

	if s.bus != nil {
		s.Watch(func(ev ViewEvent) {
			s.bus.Broadcast(context.Background(), ev)
		})
	}
	return s
}

func (s *Store) resolveViewer(session SessionProvider) *User {
	if session == nil {
		return NewGuest()
	}
	u, err := session.CurrentUser()
	switch {
	case err == nil && u != nil:
		return u
	case errors.Is(err, ErrNotImplemented):
		s.log.Debug("session lookup not implemented, viewing as guest")
	default:
		s.log.Warn("session lookup failed, viewing as guest", "error", err)
	}
	return NewGuest()
}

// deriveVisible drops the viewer's hidden notes and applies the filter mode.
func (s *Store) deriveVisible() []*Note {
	s.members.Track()
	s.hidden.Track()
	mode := s.mode.Get()

	candidates := make([]*Note, 0, len(s.order))
	for _, id := range s.order {
		if s.viewer.HasHidden(id) {
			continue
		}
		n := s.notes[id]
		n.Minimized.Get()
		candidates = append(candidates, n)
	}
	return DeriveVisible(candidates, mode)
}

// Runtime exposes the runtime the store's cells live on.
func (s *Store) Runtime() *reactive.Runtime {
	return s.rt
}

// Viewer is the user the session resolved to.
func (s *Store) Viewer() *User {
	return s.viewer
}

// AddUser registers u as a possible note author.
func (s *Store) AddUser(u *User) {
	if u == nil {
		return
	}
	s.users[u.ID] = u
}

// User looks up a registered user.
func (s *Store) User(id uuid.UUID) (*User, bool) {
	u, ok := s.users[id]
	return u, ok
}

// Note looks up a note by id.
func (s *Store) Note(id uuid.UUID) (*Note, bool) {
	n, ok := s.notes[id]
	return n, ok
}

// Notes returns every note in store order, hidden ones included.
func (s *Store) Notes() []*Note {
	out := make([]*Note, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.notes[id])
	}
	return out
}

// Len returns the number of notes.
func (s *Store) Len() int {
	return len(s.order)
}

// Visible returns the derived view: filtered, hidden notes removed and ordered for display.
func (s *Store) Visible() []*Note {
	return s.visible.Peek()
}

// Mode returns the active filter mode.
func (s *Store) Mode() FilterMode {
	return s.mode.Peek()
}

// FocusedMaximized returns the note holding maximize focus.
func (s *Store) FocusedMaximized() (uuid.UUID, bool) {
	f := s.focusedMaximized.Peek()
	return f.UUID, f.Valid
}

// FocusedEditing returns the note holding edit focus.
func (s *Store) FocusedEditing() (uuid.UUID, bool) {
	f := s.focusedEditing.Peek()
	return f.UUID, f.Valid
}

// CreateNote adds an empty note by authorID. Guests and unknown authors
// cannot create notes.
func (s *Store) CreateNote(authorID uuid.UUID) (uuid.UUID, bool) {
	return s.CreateNoteWithText(authorID, "", "")
}

// CreateNoteWithText adds a note with trimmed title and body.
func (s *Store) CreateNoteWithText(authorID uuid.UUID, title, body string) (uuid.UUID, bool) {
	author, ok := s.users[authorID]
	if !ok || author.IsGuest() {
		s.log.Debug("create note ignored", "author_id", authorID, "known", ok)
		return uuid.Nil, false
	}

	now := s.clock()
	n := newNote(s.rt, noteSeed{
		id:        uuid.New(),
		title:     sanitize.Input(title),
		body:      sanitize.Input(body),
		author:    author,
		createdAt: now,
		colour:    s.colour(),
	}, s.clock)

	s.rt.Batch(func() { s.addNote(n) })
	s.mirror(n)
	s.log.Debug("note created", "note_id", n.ID, "author_id", authorID)
	return n.ID, true
}

// addNote appends n and registers its bucket reconciliation effects.
func (s *Store) addNote(n *Note) {
	s.notes[n.ID] = n
	s.order = append(s.order, n.ID)

	pin := reactive.NewEffect(s.rt, func() {
		if n.Pinned.Get() {
			s.viewer.addPinned(n.ID)
		} else {
			s.viewer.removePinned(n.ID)
		}
	})
	minimize := reactive.NewEffect(s.rt, func() {
		if n.Minimized.Get() {
			s.viewer.addMinimized(n.ID)
		} else {
			s.viewer.removeMinimized(n.ID)
		}
	})
	s.noteEffects[n.ID] = []*reactive.Effect{pin, minimize}
	s.members.Notify()
}

// UpdateTitle trims text and stores it on the note.
func (s *Store) UpdateTitle(id uuid.UUID, text string) bool {
	n, ok := s.notes[id]
	if !ok {
		return false
	}
	s.rt.Batch(func() { n.UpdateTitle(sanitize.Input(text)) })
	s.mirror(n)
	return true
}

// UpdateBody trims text and stores it on the note.
func (s *Store) UpdateBody(id uuid.UUID, text string) bool {
	n, ok := s.notes[id]
	if !ok {
		return false
	}
	s.rt.Batch(func() { n.UpdateBody(sanitize.Input(text)) })
	s.mirror(n)
	return true
}

// TogglePinned flips the pin flag; the viewer's pinned bucket follows.
func (s *Store) TogglePinned(id uuid.UUID) bool {
	return s.withNote(id, (*Note).TogglePinned)
}

// ToggleMinimized flips the minimized flag; the viewer's minimized bucket follows.
func (s *Store) ToggleMinimized(id uuid.UUID) bool {
	return s.withNote(id, (*Note).ToggleMinimized)
}

// ToggleMaximized flips the maximized flag and moves maximize focus. The
// previously focused note, if another one, is unmaximized.
func (s *Store) ToggleMaximized(id uuid.UUID) bool {
	return s.withNote(id, func(n *Note) {
		n.ToggleMaximized()
		s.moveFocus(s.focusedMaximized, n, n.Maximized.Peek(), (*Note).Unmaximize)
	})
}

// ToggleEditing flips edit mode for the note's author only.
func (s *Store) ToggleEditing(id, requesterID uuid.UUID) bool {
	n, ok := s.notes[id]
	if !ok {
		return false
	}
	if n.Author.ID != requesterID {
		s.log.Debug("edit toggle refused", "note_id", id, "requester_id", requesterID)
		return false
	}
	s.rt.Batch(func() {
		n.ToggleEditing()
		s.moveFocus(s.focusedEditing, n, n.IsEditing.Peek(), (*Note).Unedit)
	})
	return true
}

// moveFocus releases the previous holder of focus and hands focus to n while
// its flag is on. Turning n off leaves nothing focused.
func (s *Store) moveFocus(focus *reactive.Cell[uuid.NullUUID], n *Note, on bool, release func(*Note)) {
	if prev := focus.Peek(); prev.Valid && prev.UUID != n.ID {
		if p, ok := s.notes[prev.UUID]; ok {
			release(p)
		}
	}
	if on {
		focus.Set(uuid.NullUUID{UUID: n.ID, Valid: true})
	} else {
		focus.Set(uuid.NullUUID{})
	}
}

// DeleteNote removes the note and purges its id from every user's buckets.
func (s *Store) DeleteNote(id uuid.UUID) bool {
	if _, ok := s.notes[id]; !ok {
		return false
	}
	s.rt.Batch(func() {
		for _, e := range s.noteEffects[id] {
			e.Dispose()
		}
		delete(s.noteEffects, id)
		delete(s.notes, id)
		removeID(&s.order, id)

		for _, u := range s.users {
			u.forget(id)
		}
		for _, focus := range []*reactive.Cell[uuid.NullUUID]{s.focusedMaximized, s.focusedEditing} {
			if f := focus.Peek(); f.Valid && f.UUID == id {
				focus.Set(uuid.NullUUID{})
			}
		}
		s.members.Notify()
		s.hidden.Notify()
	})
	s.log.Debug("note deleted", "note_id", id)
	return true
}

// Hide removes a note from the viewer's view. Pinned notes and the viewer's
// own notes cannot be hidden.
func (s *Store) Hide(id uuid.UUID) bool {
	n, ok := s.notes[id]
	if !ok || n.Author.Equal(s.viewer) || n.Pinned.Peek() {
		return false
	}
	if !s.viewer.addHidden(id) {
		return false
	}
	s.rt.Batch(s.hidden.Notify)
	return true
}

// Unhide returns a hidden note to the view.
func (s *Store) Unhide(id uuid.UUID) bool {
	if !s.viewer.removeHidden(id) {
		return false
	}
	s.rt.Batch(s.hidden.Notify)
	return true
}

// SetQuery sets the title search text. An empty query means no title filter.
func (s *Store) SetQuery(text string) {
	s.query.Set(text)
}

// SetOnlyPinned restricts the view to pinned notes.
func (s *Store) SetOnlyPinned(on bool) {
	s.onlyPinned.Set(on)
}

// Import adds a persisted note. An unknown author is registered with a
// markup-free username. Importing an id already present is a no-op.
func (s *Store) Import(sn SerializedNote) (uuid.UUID, bool) {
	if sn.ID == uuid.Nil {
		return uuid.Nil, false
	}
	if _, exists := s.notes[sn.ID]; exists {
		return sn.ID, false
	}
	author, ok := s.users[sn.Author.ID]
	if !ok {
		author = sn.Author.IntoUser()
		author.Username = sanitize.Name(author.Username)
		s.users[author.ID] = author
	}
	n := sn.intoNote(s.rt, author, s.clock, s.colour)
	s.rt.Batch(func() { s.addNote(n) })
	return n.ID, true
}

// Export snapshots a note for persistence.
func (s *Store) Export(id uuid.UUID) (SerializedNote, bool) {
	n, ok := s.notes[id]
	if !ok {
		return SerializedNote{}, false
	}
	return n.Serialize(), true
}

// Watch calls fn with a fresh ViewEvent after every change to the visible
// view or to any cell it renders, until cancel is called.
func (s *Store) Watch(fn func(ViewEvent)) (cancel func()) {
	first := true
	e := reactive.NewEffect(s.rt, func() {
		ev := s.viewEvent(s.visible.Get(), s.mode.Get())
		if first {
			first = false
			return
		}
		s.rt.Untracked(func() { fn(ev) })
	})
	return e.Dispose
}

// withNote runs fn on the note inside a batch.
func (s *Store) withNote(id uuid.UUID, fn func(*Note)) bool {
	n, ok := s.notes[id]
	if !ok {
		return false
	}
	s.rt.Batch(func() { fn(n) })
	return true
}

// mirror hands the note to persistence. Guest notes are never mirrored.
func (s *Store) mirror(n *Note) {
	if n.Author.IsGuest() {
		return
	}
	err := s.persistence.Save(n.Serialize())
	switch {
	case err == nil:
	case errors.Is(err, ErrNotImplemented):
		s.log.Debug("note mirror skipped", "note_id", n.ID, "error", err)
	default:
		s.log.Warn(ErrPersist.Error(), "note_id", n.ID, "error", err)
	}
}
