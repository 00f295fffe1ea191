// Package docs PastelNotes API
//
// @title  PastelNotes API
// @version 0.1.0
// @description Sticky notes with pin, minimize, maximize and edit flags, a filtered view and live view updates.
// @host      localhost:8080
// @BasePath /api/v1
// @schemes http https
package docs

import (
	_ "pastel-notes/cmd/server/handlers/httperr"
	_ "pastel-notes/internal/services/notes"
)
