// Package domain contains entities without transport, just meta-data and validation.
package domain

import "github.com/google/uuid"

// ConnID identifies one live transport connection. It dies with the connection;
// a reconnecting browser gets a new one.
type ConnID string

// NewConnID is a tiny helper to avoid ad-hoc id generation in adapters.
func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}
