package models

import "time"

type Profile struct {
	ID        string    `json:"id" db:"id"`
	FullName  *string   `json:"full_name" db:"full_name"`
	CNPJ      *string   `json:"cnpj" db:"cnpj"`
	MEIStatus bool      `json:"mei_status" db:"mei_status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
