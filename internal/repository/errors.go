package repository

import "errors"

// ErrNotFound indicates the requested row does not exist. Callers check it
// with errors.Is; repositories wrap it with the entity name.
var ErrNotFound = errors.New("not found")
