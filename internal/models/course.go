package models

import "time"

// CourseDB represents a course row in the database
type CourseDB struct {
	CourseID        int64     `db:"id"`               // Primary key
	Title           string    `db:"title"`            // Course title
	Description     string    `db:"description"`      // Course description
	EstimatedTime   *string   `db:"estimated_time"`   // Optional free-form duration
	MaterialsNeeded *string   `db:"materials_needed"` // Optional free-form material list
	UserID          int64     `db:"user_id"`          // Owning user
	CreatedAt       time.Time `db:"created_at"`       // Creation timestamp
	UpdatedAt       time.Time `db:"updated_at"`       // Last update timestamp
}

// CourseWithOwnerDB is a course row joined with its owner.
type CourseWithOwnerDB struct {
	CourseDB
	Owner UserDB `db:"owner"`
}

// CourseResponse is the public view of a course together with its owner.
// swagger:model CourseResponse
type CourseResponse struct {
	// Course ID
	// example: 1
	ID int64 `json:"id"`

	// Title
	// example: Build a Basic Bookcase
	Title string `json:"title"`

	// Description
	// example: High-end furniture projects are great to dream about.
	Description string `json:"description"`

	// Estimated time
	// example: 12 hours
	EstimatedTime *string `json:"estimatedTime"`

	// Materials needed
	// example: * 1/2 x 3/4 inch parting strip
	MaterialsNeeded *string `json:"materialsNeeded"`

	// Owner ID
	// example: 1
	UserID int64 `json:"userId"`

	// Owner
	User UserResponse `json:"user"`
}

// Public converts the joined row to its response form.
func (c *CourseWithOwnerDB) Public() CourseResponse {
	return CourseResponse{
		ID:              c.CourseID,
		Title:           c.Title,
		Description:     c.Description,
		EstimatedTime:   c.EstimatedTime,
		MaterialsNeeded: c.MaterialsNeeded,
		UserID:          c.UserID,
		User:            c.Owner.Public(),
	}
}

// CourseRequest represents the JSON body for creating or updating a course
// swagger:model CourseRequest
type CourseRequest struct {
	// Title
	// required: true
	// example: Build a Basic Bookcase
	Title string `json:"title"`

	// Description
	// required: true
	// example: High-end furniture projects are great to dream about.
	Description string `json:"description"`

	// Estimated time
	// example: 12 hours
	EstimatedTime *string `json:"estimatedTime"`

	// Materials needed
	// example: * 1/2 x 3/4 inch parting strip
	MaterialsNeeded *string `json:"materialsNeeded"`

	// Owner ID; defaults to the authenticated user. Ignored on update.
	// example: 1
	UserID *int64 `json:"userId"`
}

// MessageResponse carries a single human-readable message.
// swagger:model MessageResponse
type MessageResponse struct {
	// Message
	// example: Access Denied
	Message string `json:"message"`
}

// ValidationErrorResponse lists every failed validation rule in order.
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	// Messages
	// example: Please provide a value for "title"
	Errors []string `json:"errors"`
}

// ErrorBody is the nested error payload of ErrorResponse.
type ErrorBody struct {
	// Message
	// example: Route Not Found
	Message string `json:"message"`
}

// ErrorResponse is returned for unmatched routes and unexpected failures.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
