package entity

import "time"

type User struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	AcceptedTerms bool      `json:"acceptedTerms"`
	CreatedAt     time.Time `json:"createdAt"`
}
