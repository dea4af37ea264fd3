// Package kv is the persistence surface for session state: a durable
// key-value store with opaque string values that survives restarts.
// It plays the role browser-local storage played in the original
// storefront deployment.
package kv

import "errors"

var (
	ErrNotFound    = errors.New("kv: key not found")
	ErrInvalidKey  = errors.New("kv: invalid key")
	ErrStoreClosed = errors.New("kv: store closed")
)

// Store is a durable string-to-string map. Implementations must make
// Set visible to a later Get even across process restarts; last writer
// wins, no cross-process reconciliation.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
