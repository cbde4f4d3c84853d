package session

import "github.com/logiksutra/bookshelf-cli/internal/errors"

// errStorageUnavailable is returned when a session write is attempted
// while the state store could not be opened.
var errStorageUnavailable = errors.Internal("session storage is unavailable")
