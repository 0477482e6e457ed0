package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	UserID       int64     `db:"id"`            // Primary key
	FirstName    string    `db:"first_name"`    // Given name
	LastName     string    `db:"last_name"`     // Family name
	EmailAddress string    `db:"email_address"` // Unique login identifier
	PasswordHash string    `db:"password"`      // bcrypt hash, never the plaintext
	CreatedAt    time.Time `db:"created_at"`    // Creation timestamp
	UpdatedAt    time.Time `db:"updated_at"`    // Last update timestamp
}

// UserResponse is the public view of a user.
// swagger:model UserResponse
type UserResponse struct {
	// User ID
	// example: 1
	ID int64 `json:"id"`

	// First name
	// example: Ann
	FirstName string `json:"firstName"`

	// Last name
	// example: Lee
	LastName string `json:"lastName"`

	// Email address
	// example: ann@example.com
	EmailAddress string `json:"emailAddress"`
}

// Public strips the password hash and audit timestamps.
func (u *UserDB) Public() UserResponse {
	return UserResponse{
		ID:           u.UserID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: u.EmailAddress,
	}
}

// CreateUserRequest represents the JSON body for user creation
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// First name
	// required: true
	// example: Ann
	FirstName string `json:"firstName"`

	// Last name
	// required: true
	// example: Lee
	LastName string `json:"lastName"`

	// Email address, used as the Basic-Auth username
	// required: true
	// example: ann@example.com
	EmailAddress string `json:"emailAddress"`

	// Password
	// required: true
	// example: secret1
	Password string `json:"password"`
}
