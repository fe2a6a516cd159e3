package models

import "time"

// Nutritionist is a registered account. PasswordHash is a bcrypt hash and is
// never serialized.
type Nutritionist struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CRN          string    `json:"crn"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicAccount is the subset of account fields safe to return to clients.
type PublicAccount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the client-facing view of n.
func (n *Nutritionist) Public() PublicAccount {
	return PublicAccount{ID: n.ID, Name: n.Name, Email: n.Email}
}
