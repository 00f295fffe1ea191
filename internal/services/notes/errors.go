package notes

import "errors"

// ErrNotImplemented is returned by session and persistence collaborators that
// have no backing implementation. Callers treat it as "nothing happened".
var ErrNotImplemented = errors.New("not implemented")

// ErrNoSession is returned when no viewer could be resolved for a session.
var ErrNoSession = errors.New("no active session")

// ErrLoopStopped is returned when a command is submitted to a stopped loop.
var ErrLoopStopped = errors.New("store loop stopped")

// ErrPersist wraps persistence failures other than ErrNotImplemented.
var ErrPersist = errors.New("failed to persist note")
