package notes

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"pastel-notes/cmd/server/testutil"
	"pastel-notes/internal/logger"
	"pastel-notes/internal/services/notes"
	"pastel-notes/internal/utils/timedate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notesFixture struct {
	app    *fiber.App
	loop   *notes.Loop
	viewer *notes.User
}

func setupNotesApp(t *testing.T, session notes.SessionProvider) *notesFixture {
	t.Helper()

	app := testutil.CreateTestApp(t)
	store := notes.NewStore(session, logger.L())
	loop := testutil.StartTestLoop(t, store)
	h := NewHandlers(loop, testutil.CreateTestValidator(t))

	app.Get("/notes", h.List)
	app.Post("/notes", h.Create)
	app.Post("/notes/import", h.Import)
	app.Patch("/notes/:id", h.Update)
	app.Delete("/notes/:id", h.Delete)
	app.Post("/notes/:id/pin", h.Pin)
	app.Post("/notes/:id/minimize", h.Minimize)
	app.Post("/notes/:id/maximize", h.Maximize)
	app.Post("/notes/:id/edit", h.Edit)
	app.Post("/notes/:id/hide", h.Hide)
	app.Post("/notes/:id/unhide", h.Unhide)
	app.Get("/notes/:id/export", h.Export)
	app.Put("/filter", h.SetFilter)
	app.Get("/me", h.Me)

	return &notesFixture{app: app, loop: loop, viewer: store.Viewer()}
}

func (f *notesFixture) do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	resp, err := f.app.Test(testutil.CreateJSONRequest(method, url, body))
	require.NoError(t, err)
	return resp
}

func (f *notesFixture) create(t *testing.T, title, body string) notes.NoteView {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/notes", notes.CreateNoteRequest{Title: title, Body: body})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return testutil.DecodeJSON[notes.NoteResponse](t, resp).Note
}

// seedForeignNote adds a note authored by someone other than the viewer.
func (f *notesFixture) seedForeignNote(t *testing.T) uuid.UUID {
	t.Helper()
	var (
		id      uuid.UUID
		created bool
	)
	err := f.loop.Do(context.Background(), func(s *notes.Store) {
		bob := notes.NewUser("bob")
		s.AddUser(bob)
		id, created = s.CreateNoteWithText(bob.ID, "bob's", "")
	})
	require.NoError(t, err)
	require.True(t, created)
	return id
}

func aliceSession() notes.SessionProvider {
	return notes.StaticSession{User: notes.NewUser("alice")}
}

func TestCreateAndList(t *testing.T) {
	f := setupNotesApp(t, aliceSession())

	created := f.create(t, "shopping", "milk")
	assert.Equal(t, "shopping", created.Title)
	assert.Equal(t, "milk", created.Body)
	assert.Equal(t, "alice", created.AuthorUsername)
	assert.Equal(t, notes.LimitNormal, created.TitleLimit)

	resp := f.do(t, http.MethodGet, "/notes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := testutil.DecodeJSON[notes.ListNotesResponse](t, resp)
	require.Len(t, list.Notes, 1)
	assert.Equal(t, created.ID, list.Notes[0].ID)
	assert.Equal(t, 1, list.TotalCount)
	assert.Equal(t, notes.Normal(), list.Mode)
}

func TestCreateWithoutBody(t *testing.T) {
	f := setupNotesApp(t, aliceSession())

	resp := f.do(t, http.MethodPost, "/notes", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	n := testutil.DecodeJSON[notes.NoteResponse](t, resp).Note
	assert.Empty(t, n.Title)
	assert.Empty(t, n.Body)
}

func TestCreateKeepsTextVerbatim(t *testing.T) {
	f := setupNotesApp(t, aliceSession())

	n := f.create(t, "  vector<int> notes ", " fish &amp; chips\n")
	assert.Equal(t, "vector<int> notes", n.Title)
	assert.Equal(t, "fish &amp; chips", n.Body)
}

func TestCreateAsGuestIsNoop(t *testing.T) {
	f := setupNotesApp(t, notes.UnimplementedSession{})

	resp := f.do(t, http.MethodPost, "/notes", notes.CreateNoteRequest{Title: "t"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	list := testutil.DecodeJSON[notes.ListNotesResponse](t, f.do(t, http.MethodGet, "/notes", nil))
	assert.Empty(t, list.Notes)
}

func TestCreateRejectsOversizedTitle(t *testing.T) {
	f := setupNotesApp(t, aliceSession())

	resp := f.do(t, http.MethodPost, "/notes", notes.CreateNoteRequest{Title: strings.Repeat("x", 4001)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdate(t *testing.T) {
	f := setupNotesApp(t, aliceSession())
	n := f.create(t, "old", "body")

	title := "new"
	resp := f.do(t, http.MethodPatch, "/notes/"+n.ID.String(), notes.UpdateNoteRequest{Title: &title})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := testutil.DecodeJSON[notes.NoteResponse](t, resp).Note
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "body", updated.Body)
	assert.NotNil(t, updated.LastEditLabel)
}

func TestNoteIDParameter(t *testing.T) {
	f := setupNotesApp(t, aliceSession())

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{name: "malformed", id: "not-a-uuid", status: http.StatusNotFound},
		{name: "unknown", id: uuid.NewString(), status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.do(t, http.MethodPost, "/notes/"+tt.id+"/pin", nil)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestPinPromotesNote(t *testing.T) {
	f := setupNotesApp(t, aliceSession())
	first := f.create(t, "first", "")
	second := f.create(t, "second", "")

	resp := f.do(t, http.MethodPost, "/notes/"+second.ID.String()+"/pin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, testutil.DecodeJSON[notes.NoteResponse](t, resp).Note.Pinned)

	list := testutil.DecodeJSON[notes.ListNotesResponse](t, f.do(t, http.MethodGet, "/notes", nil))
	require.Len(t, list.Notes, 2)
	assert.Equal(t, second.ID, list.Notes[0].ID)
	assert.Equal(t, first.ID, list.Notes[1].ID)

	me := testutil.DecodeJSON[notes.MeResponse](t, f.do(t, http.MethodGet, "/me", nil))
	assert.Equal(t, []uuid.UUID{second.ID}, me.Pinned)
	assert.Equal(t, "alice", me.User.Username)
	assert.False(t, me.Guest)
}

func TestMaximizeMovesFocus(t *testing.T) {
	f := setupNotesApp(t, aliceSession())
	a := f.create(t, "a", "")
	b := f.create(t, "b", "")

	f.do(t, http.MethodPost, "/notes/"+a.ID.String()+"/maximize", nil)
	f.do(t, http.MethodPost, "/notes/"+b.ID.String()+"/maximize", nil)

	list := testutil.DecodeJSON[notes.ListNotesResponse](t, f.do(t, http.MethodGet, "/notes", nil))
	maximized := map[uuid.UUID]bool{}
	for _, n := range list.Notes {
		maximized[n.ID] = n.Maximized
	}
	assert.False(t, maximized[a.ID])
	assert.True(t, maximized[b.ID])
}

func TestEdit(t *testing.T) {
	f := setupNotesApp(t, aliceSession())
	n := f.create(t, "mine", "")
	path := "/notes/" + n.ID.String() + "/edit"

	resp := f.do(t, http.MethodPost, path, notes.EditRequest{RequesterID: uuid.NewString()})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "only the author may edit")

	resp = f.do(t, http.MethodPost, path, notes.EditRequest{RequesterID: "nope"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, testutil.DecodeJSON[notes.NoteResponse](t, resp).Note.IsEditing)

	resp = f.do(t, http.MethodPost, path, notes.EditRequest{RequesterID: f.viewer.ID.String()})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, testutil.DecodeJSON[notes.NoteResponse](t, resp).Note.IsEditing)
}

func TestHideAndUnhide(t *testing.T) {
	f := setupNotesApp(t, aliceSession())
	own := f.create(t, "own", "")
	foreign := f.seedForeignNote(t)

	resp := f.do(t, http.MethodPost, "/notes/"+own.ID.String()+"/hide", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "own notes cannot be hidden")

	resp = f.do(t, http.MethodPost, "/notes/"+foreign.String()+"/hide", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list := testutil.DecodeJSON[notes.ListNotesResponse](t, f.do(t, http.MethodGet, "/notes", nil))
	require.Len(t, list.Notes, 1)
	assert.Equal(t, own.ID, list.Notes[0].ID)
	assert.Equal(t, 1, list.HiddenCount)

	resp = f.do(t, http.MethodPost, "/notes/"+foreign.String()+"/unhide", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list = testutil.DecodeJSON[notes.ListNotesResponse](t, f.do(t, http.MethodGet, "/notes", nil))
	assert.Len(t, list.Notes, 2)
}

func TestDelete(t *testing.T) {
	f := setupNotesApp(t, aliceSession())
	n := f.create(t, "gone", "")

	resp := f.do(t, http.MethodDelete, "/notes/"+n.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/notes/"+n.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	list := testutil.DecodeJSON[notes.ListNotesResponse](t, f.do(t, http.MethodGet, "/notes", nil))
	assert.Empty(t, list.Notes)
}

func TestExportImport(t *testing.T) {
	f := setupNotesApp(t, aliceSession())
	n := f.create(t, "exported", "text")

	resp := f.do(t, http.MethodGet, "/notes/"+uuid.NewString()+"/export", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/notes/"+n.ID.String()+"/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sn := testutil.DecodeJSON[notes.SerializedNote](t, resp)
	assert.Equal(t, n.ID, sn.ID)
	assert.Equal(t, "alice", sn.Author.Username)

	resp = f.do(t, http.MethodPost, "/notes/import", sn)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "existing id")

	fresh := notes.SerializedNote{
		ID:        uuid.New(),
		Title:     "imported",
		Author:    notes.SerializedUser{Username: "carol", ID: uuid.New(), CreationDate: timedate.FromUnix(1)},
		CreatedAt: timedate.FromUnix(2),
	}
	resp = f.do(t, http.MethodPost, "/notes/import", fresh)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	imported := testutil.DecodeJSON[notes.NoteResponse](t, resp).Note
	assert.Equal(t, "carol", imported.AuthorUsername)
	assert.False(t, imported.Pinned)
}

func TestSetFilter(t *testing.T) {
	f := setupNotesApp(t, aliceSession())
	f.create(t, "Shopping", "")
	shop := f.create(t, "shop hours", "")
	f.create(t, "work", "")

	query := "shop"
	resp := f.do(t, http.MethodPut, "/filter", notes.FilterRequest{Query: &query})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := testutil.DecodeJSON[notes.ListNotesResponse](t, resp)
	assert.Equal(t, notes.Queried("shop"), list.Mode)
	require.Len(t, list.Notes, 1)
	assert.Equal(t, shop.ID, list.Notes[0].ID)

	onlyPinned := true
	resp = f.do(t, http.MethodPut, "/filter", notes.FilterRequest{OnlyPinned: &onlyPinned})
	list = testutil.DecodeJSON[notes.ListNotesResponse](t, resp)
	assert.Equal(t, notes.PinnedQueried("shop"), list.Mode)
	assert.Empty(t, list.Notes)

	empty := ""
	resp = f.do(t, http.MethodPut, "/filter", notes.FilterRequest{Query: &empty})
	list = testutil.DecodeJSON[notes.ListNotesResponse](t, resp)
	assert.Equal(t, notes.Pinned(), list.Mode)
}

type stoppedRunner struct{}

func (stoppedRunner) Do(context.Context, func(*notes.Store)) error { return notes.ErrLoopStopped }

func TestStoppedLoopIsUnavailable(t *testing.T) {
	app := testutil.CreateTestApp(t)
	h := NewHandlers(stoppedRunner{}, testutil.CreateTestValidator(t))
	app.Get("/notes", h.List)
	app.Post("/notes/:id/pin", h.Pin)

	resp, err := app.Test(testutil.CreateJSONRequest(http.MethodGet, "/notes", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = app.Test(testutil.CreateJSONRequest(http.MethodPost, "/notes/"+uuid.NewString()+"/pin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
