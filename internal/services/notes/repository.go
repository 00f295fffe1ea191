package notes

import (
	"context"
)

// SessionProvider resolves the viewer of the current session.
type SessionProvider interface {
	CurrentUser() (*User, error)
}

// Persistence mirrors notes to durable storage.
type Persistence interface {
	Save(note SerializedNote) error
}

// Bus defines the interface for event broadcasting
type Bus interface {
	Broadcast(ctx context.Context, ev ViewEvent)
}

// StaticSession always resolves to the same user.
type StaticSession struct {
	User *User
}

// CurrentUser implements SessionProvider.
func (s StaticSession) CurrentUser() (*User, error) {
	if s.User == nil {
		return nil, ErrNoSession
	}
	return s.User, nil
}

// UnimplementedSession is the session lookup the app does not have yet.
type UnimplementedSession struct{}

// CurrentUser always fails with ErrNotImplemented.
func (UnimplementedSession) CurrentUser() (*User, error) {
	return nil, ErrNotImplemented
}

// UnimplementedPersistence is the database mirror the app does not have yet.
type UnimplementedPersistence struct{}

// Save always fails with ErrNotImplemented.
func (UnimplementedPersistence) Save(SerializedNote) error {
	return ErrNotImplemented
}
