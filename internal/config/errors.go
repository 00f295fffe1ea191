package config

import "errors"

var (
	ErrAppPortRange         = errors.New("APP_PORT must be between 1 and 65535")
	ErrLogLevelEmpty        = errors.New("LOG_LEVEL cannot be empty")
	ErrLogFormatEmpty       = errors.New("LOG_FORMAT cannot be empty")
	ErrViewerUsernameEmpty  = errors.New("VIEWER_USERNAME cannot be empty unless GUEST_MODE is set")
	ErrCommandQueueSize     = errors.New("COMMAND_QUEUE_SIZE must be greater than 0")
	ErrWSOutboxBuffer       = errors.New("WS_OUTBOX_BUFFER must be greater than 0")
	ErrWSMaxSessionSec      = errors.New("WS_MAX_SESSION_SEC must be greater than 0")
	ErrMutationRateNegative = errors.New("MUTATION_RATE_PER_MIN cannot be negative")
)
