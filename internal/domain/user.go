package domain

import "time"

// User is a registered account. Email and Nickname carry unique indexes so
// duplicate checks stay race-safe even when two joins arrive concurrently.
// Password holds a bcrypt hash, never the plaintext credential.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"size:190;uniqueIndex" json:"email" form:"email"`
	Nickname  string    `gorm:"size:64;uniqueIndex" json:"nickname" form:"nickname"`
	Password  string    `gorm:"size:255" json:"-" form:"password"`
	Photo     string    `gorm:"size:255" json:"photo"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (User) TableName() string {
	return "users"
}
