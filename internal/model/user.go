package model

import "time"

// User é uma conta de autor. Contas são criadas apenas pelo stasisctl;
// não existe cadastro público.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
