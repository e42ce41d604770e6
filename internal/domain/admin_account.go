package domain

import "time"

// SubjectType identifies the kind of authenticated principal.
type SubjectType string

const (
	SubjectTypeAdmin SubjectType = "ADMIN"
)

// AdminAccount models an administrator who triages and resolves tickets.
type AdminAccount struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
