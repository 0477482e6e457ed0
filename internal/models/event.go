package models

// Course lifecycle event types.
const (
	CourseCreated = "course.created"
	CourseUpdated = "course.updated"
	CourseDeleted = "course.deleted"
)

// CourseEvent describes a change to a course, published to the event stream.
type CourseEvent struct {
	EventID   string `json:"event_id"`  // EventID is a unique identifier for the event.
	Type      string `json:"type"`      // Type is one of CourseCreated, CourseUpdated, CourseDeleted.
	CourseID  int64  `json:"course_id"` // CourseID is the affected course.
	UserID    int64  `json:"user_id"`   // UserID is the user who made the change.
	Timestamp int64  `json:"timestamp"` // Timestamp is the Unix time (seconds) of the change.
}
