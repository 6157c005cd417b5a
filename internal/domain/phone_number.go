package domain

import "github.com/google/uuid"

type PhoneNumber struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
}
