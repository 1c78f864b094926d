package storage

import "errors"

// ErrKeyNotFound - returned by Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("key not found")
