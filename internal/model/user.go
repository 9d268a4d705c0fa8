// Package model defines domain entities for the application.
package model

import "time"

// User is a directory entry held by the user store.
// CreatedAt is stamped once at construction and never changes.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
