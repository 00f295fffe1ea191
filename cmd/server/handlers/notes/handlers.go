package notes

import (
	"context"

	"pastel-notes/cmd/server/handlers/handlerutil"
	"pastel-notes/internal/services/notes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Runner executes commands against the store on its owning goroutine
type Runner interface {
	Do(ctx context.Context, fn func(*notes.Store)) error
}

// Handlers contains the notes HTTP handlers
type Handlers struct {
	loop      Runner
	validator *validator.Validate
}

// NewHandlers creates new notes handlers
func NewHandlers(loop Runner, validator *validator.Validate) *Handlers {
	return &Handlers{
		loop:      loop,
		validator: validator,
	}
}

// List returns the visible notes
// @Summary List the visible notes in display order
// @Tags notes
// @Produce json
// @Success 200 {object} notes.ListNotesResponse
// @Failure 503 {object} httperr.E
// @Router /notes [get]
func (h *Handlers) List(c *fiber.Ctx) error {
	var resp notes.ListNotesResponse
	if err := h.loop.Do(c.UserContext(), func(s *notes.Store) { resp = s.List() }); err != nil {
		return handlerutil.HandleLoopError(err, "List", nil)
	}
	return c.JSON(resp)
}

// Create handles note creation
// @Summary Create a note authored by the viewer
// @Description Guests cannot create notes; the request is then a no-op answered with 204.
// @Tags notes
// @Accept json
// @Produce json
// @Param request body notes.CreateNoteRequest false "Initial title and body"
// @Success 201 {object} notes.NoteResponse
// @Success 204
// @Failure 400 {object} httperr.E
// @Router /notes [post]
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req notes.CreateNoteRequest
	if len(c.Body()) > 0 {
		if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Create"); err != nil {
			return err
		}
	}

	var (
		view    notes.NoteView
		created bool
	)
	err := h.loop.Do(c.UserContext(), func(s *notes.Store) {
		id, ok := s.CreateNoteWithText(s.Viewer().ID, req.Title, req.Body)
		if ok {
			view, created = s.View(id)
		}
	})
	if err != nil {
		return handlerutil.HandleLoopError(err, "Create", nil)
	}
	if !created {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(notes.NoteResponse{Note: view})
}

// Update handles title and body edits
// @Summary Update a note's title and/or body
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param request body notes.UpdateNoteRequest true "Fields to change"
// @Success 200 {object} notes.NoteResponse
// @Success 204
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /notes/{id} [patch]
func (h *Handlers) Update(c *fiber.Ctx) error {
	noteID, err := handlerutil.ExtractNoteID(c, "Update")
	if err != nil {
		return err
	}

	var req notes.UpdateNoteRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Update"); err != nil {
		return err
	}

	return h.mutate(c, "Update", noteID, func(s *notes.Store) bool {
		return req.Apply(s, noteID)
	})
}

// Delete handles note deletion
// @Summary Delete a note
// @Tags notes
// @Param id path string true "Note ID"
// @Success 204
// @Failure 404 {object} httperr.E
// @Router /notes/{id} [delete]
func (h *Handlers) Delete(c *fiber.Ctx) error {
	noteID, err := handlerutil.ExtractNoteID(c, "Delete")
	if err != nil {
		return err
	}

	err = h.loop.Do(c.UserContext(), func(s *notes.Store) { s.DeleteNote(noteID) })
	if err != nil {
		return handlerutil.HandleLoopError(err, "Delete", &noteID)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Pin toggles the pinned flag
// @Summary Toggle pinned
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} notes.NoteResponse
// @Success 204
// @Failure 404 {object} httperr.E
// @Router /notes/{id}/pin [post]
func (h *Handlers) Pin(c *fiber.Ctx) error {
	return h.toggle(c, "Pin", (*notes.Store).TogglePinned)
}

// Minimize toggles the minimized flag
// @Summary Toggle minimized
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} notes.NoteResponse
// @Success 204
// @Failure 404 {object} httperr.E
// @Router /notes/{id}/minimize [post]
func (h *Handlers) Minimize(c *fiber.Ctx) error {
	return h.toggle(c, "Minimize", (*notes.Store).ToggleMinimized)
}

// Maximize toggles the maximized flag and moves maximize focus
// @Summary Toggle maximized
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} notes.NoteResponse
// @Success 204
// @Failure 404 {object} httperr.E
// @Router /notes/{id}/maximize [post]
func (h *Handlers) Maximize(c *fiber.Ctx) error {
	return h.toggle(c, "Maximize", (*notes.Store).ToggleMaximized)
}

// Hide removes another author's note from the viewer's view
// @Summary Hide a note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} notes.NoteResponse
// @Success 204
// @Failure 404 {object} httperr.E
// @Router /notes/{id}/hide [post]
func (h *Handlers) Hide(c *fiber.Ctx) error {
	return h.toggle(c, "Hide", (*notes.Store).Hide)
}

// Unhide returns a hidden note to the view
// @Summary Unhide a note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} notes.NoteResponse
// @Success 204
// @Failure 404 {object} httperr.E
// @Router /notes/{id}/unhide [post]
func (h *Handlers) Unhide(c *fiber.Ctx) error {
	return h.toggle(c, "Unhide", (*notes.Store).Unhide)
}

// Edit toggles edit mode; only the author may enter it
// @Summary Toggle edit mode
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param request body notes.EditRequest false "Requester, defaults to the viewer"
// @Success 200 {object} notes.NoteResponse
// @Success 204
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /notes/{id}/edit [post]
func (h *Handlers) Edit(c *fiber.Ctx) error {
	noteID, err := handlerutil.ExtractNoteID(c, "Edit")
	if err != nil {
		return err
	}

	var req notes.EditRequest
	if len(c.Body()) > 0 {
		if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Edit"); err != nil {
			return err
		}
	}

	var requester uuid.NullUUID
	if req.RequesterID != "" {
		requester = uuid.NullUUID{UUID: uuid.MustParse(req.RequesterID), Valid: true}
	}

	return h.mutate(c, "Edit", noteID, func(s *notes.Store) bool {
		if !requester.Valid {
			requester = uuid.NullUUID{UUID: s.Viewer().ID, Valid: true}
		}
		return s.ToggleEditing(noteID, requester.UUID)
	})
}

// Export returns the persistable form of a note
// @Summary Export a note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} notes.SerializedNote
// @Failure 404 {object} httperr.E
// @Router /notes/{id}/export [get]
func (h *Handlers) Export(c *fiber.Ctx) error {
	noteID, err := handlerutil.ExtractNoteID(c, "Export")
	if err != nil {
		return err
	}

	var (
		sn    notes.SerializedNote
		found bool
	)
	err = h.loop.Do(c.UserContext(), func(s *notes.Store) { sn, found = s.Export(noteID) })
	if err != nil {
		return handlerutil.HandleLoopError(err, "Export", &noteID)
	}
	if !found {
		return handlerutil.NotFoundError()
	}
	return c.JSON(sn)
}

// Import adds a previously exported note
// @Summary Import a note
// @Description Display flags start cleared and a new colour is drawn. Importing an existing id is a no-op.
// @Tags notes
// @Accept json
// @Produce json
// @Param request body notes.SerializedNote true "Exported note"
// @Success 201 {object} notes.NoteResponse
// @Success 204
// @Failure 400 {object} httperr.E
// @Router /notes/import [post]
func (h *Handlers) Import(c *fiber.Ctx) error {
	var req notes.SerializedNote
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Import"); err != nil {
		return err
	}

	var (
		view     notes.NoteView
		imported bool
	)
	err := h.loop.Do(c.UserContext(), func(s *notes.Store) {
		if id, ok := s.Import(req); ok {
			view, imported = s.View(id)
		}
	})
	if err != nil {
		return handlerutil.HandleLoopError(err, "Import", &req.ID)
	}
	if !imported {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(notes.NoteResponse{Note: view})
}

// SetFilter updates the search text and pinned-only toggle
// @Summary Set the filter
// @Description An empty query removes the title filter.
// @Tags filter
// @Accept json
// @Produce json
// @Param request body notes.FilterRequest true "Filter inputs"
// @Success 200 {object} notes.ListNotesResponse
// @Failure 400 {object} httperr.E
// @Router /filter [put]
func (h *Handlers) SetFilter(c *fiber.Ctx) error {
	var req notes.FilterRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "SetFilter"); err != nil {
		return err
	}

	var resp notes.ListNotesResponse
	err := h.loop.Do(c.UserContext(), func(s *notes.Store) {
		req.Apply(s)
		resp = s.List()
	})
	if err != nil {
		return handlerutil.HandleLoopError(err, "SetFilter", nil)
	}
	return c.JSON(resp)
}

// Me returns the viewer and their buckets
// @Summary Get the current viewer
// @Tags viewer
// @Produce json
// @Success 200 {object} notes.MeResponse
// @Router /me [get]
func (h *Handlers) Me(c *fiber.Ctx) error {
	var resp notes.MeResponse
	if err := h.loop.Do(c.UserContext(), func(s *notes.Store) { resp = s.Me() }); err != nil {
		return handlerutil.HandleLoopError(err, "Me", nil)
	}
	return c.JSON(resp)
}

func (h *Handlers) toggle(c *fiber.Ctx, handlerName string, fn func(*notes.Store, uuid.UUID) bool) error {
	noteID, err := handlerutil.ExtractNoteID(c, handlerName)
	if err != nil {
		return err
	}
	return h.mutate(c, handlerName, noteID, func(s *notes.Store) bool {
		return fn(s, noteID)
	})
}

// mutate runs fn and answers with the note's view, or 204 when fn was a no-op.
func (h *Handlers) mutate(c *fiber.Ctx, handlerName string, noteID uuid.UUID, fn func(*notes.Store) bool) error {
	var (
		view    notes.NoteView
		applied bool
	)
	err := h.loop.Do(c.UserContext(), func(s *notes.Store) {
		if fn(s) {
			view, applied = s.View(noteID)
		}
	})
	if err != nil {
		return handlerutil.HandleLoopError(err, handlerName, &noteID)
	}
	if !applied {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(notes.NoteResponse{Note: view})
}
