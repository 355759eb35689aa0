package models

type User struct {
	ID             int    `json:"id" db:"id"`
	Username       string `json:"username" db:"username"`
	HashedPassword string `json:"-" db:"hashed_password"`
}

// Credentials is the registration payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
