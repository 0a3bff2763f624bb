package domain

import "time"

type User struct {
	ID           uint
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

const RoleAdmin = "admin"
