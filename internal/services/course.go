package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/course-api/internal/logger"
	"github.com/sbilibin2017/course-api/internal/models"
	"github.com/sbilibin2017/course-api/internal/repositories"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrNotCourseOwner = errors.New("user does not own the course")
	ErrOwnerNotFound  = errors.New("course owner does not exist")
)

// CourseReader defines read operations for courses.
type CourseReader interface {
	GetAll(ctx context.Context) ([]models.CourseWithOwnerDB, error)
	GetByID(ctx context.Context, courseID int64) (*models.CourseWithOwnerDB, error)
}

// CourseWriter defines write operations for courses.
type CourseWriter interface {
	Save(ctx context.Context, course *models.CourseDB) (int64, error)
	Update(ctx context.Context, course *models.CourseDB) error
	Delete(ctx context.Context, courseID int64) error
}

// CourseEventPublisher publishes course lifecycle events.
type CourseEventPublisher interface {
	Publish(ctx context.Context, event models.CourseEvent) error
}

// AfterCommitFunc schedules fn to run once the surrounding transaction has committed.
type AfterCommitFunc func(ctx context.Context, fn func(context.Context))

// CourseService handles course operations and event publishing.
type CourseService struct {
	reader      CourseReader
	writer      CourseWriter
	events      CourseEventPublisher
	afterCommit AfterCommitFunc
}

// NewCourseService creates a new CourseService. events may be nil.
// Events are handed to afterCommit; a nil afterCommit publishes right away.
func NewCourseService(reader CourseReader, writer CourseWriter, events CourseEventPublisher, afterCommit AfterCommitFunc) *CourseService {
	if afterCommit == nil {
		afterCommit = func(ctx context.Context, fn func(context.Context)) { fn(ctx) }
	}
	return &CourseService{
		reader:      reader,
		writer:      writer,
		events:      events,
		afterCommit: afterCommit,
	}
}

// List returns every course with its owner.
func (s *CourseService) List(ctx context.Context) ([]models.CourseWithOwnerDB, error) {
	courses, err := s.reader.GetAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list courses", "error", err)
		return nil, err
	}
	return courses, nil
}

// Get returns a single course with its owner.
func (s *CourseService) Get(ctx context.Context, courseID int64) (*models.CourseWithOwnerDB, error) {
	course, err := s.reader.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		logger.FromContext(ctx).Errorw("failed to get course", "courseID", courseID, "error", err)
		return nil, err
	}
	return course, nil
}

// Create stores a new course owned by course.UserID and returns its id.
func (s *CourseService) Create(ctx context.Context, course *models.CourseDB) (int64, error) {
	id, err := s.writer.Save(ctx, course)
	if err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return 0, ErrOwnerNotFound
		}
		logger.FromContext(ctx).Errorw("failed to create course", "userID", course.UserID, "error", err)
		return 0, err
	}

	s.publish(ctx, models.CourseCreated, id, course.UserID)
	return id, nil
}

// Update replaces the editable fields of course.CourseID on behalf of userID.
// The course must exist and belong to userID.
func (s *CourseService) Update(ctx context.Context, userID int64, course *models.CourseDB) error {
	if err := s.authorize(ctx, userID, course.CourseID); err != nil {
		return err
	}

	if err := s.writer.Update(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCourseNotFound
		}
		logger.FromContext(ctx).Errorw("failed to update course", "courseID", course.CourseID, "error", err)
		return err
	}

	s.publish(ctx, models.CourseUpdated, course.CourseID, userID)
	return nil
}

// Delete removes courseID on behalf of userID. The course must belong to userID.
func (s *CourseService) Delete(ctx context.Context, userID, courseID int64) error {
	if err := s.authorize(ctx, userID, courseID); err != nil {
		return err
	}

	if err := s.writer.Delete(ctx, courseID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCourseNotFound
		}
		logger.FromContext(ctx).Errorw("failed to delete course", "courseID", courseID, "error", err)
		return err
	}

	s.publish(ctx, models.CourseDeleted, courseID, userID)
	return nil
}

// authorize checks existence first, then ownership.
func (s *CourseService) authorize(ctx context.Context, userID, courseID int64) error {
	existing, err := s.Get(ctx, courseID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		logger.FromContext(ctx).Warnw("course ownership mismatch",
			"courseID", courseID, "ownerID", existing.UserID, "userID", userID)
		return ErrNotCourseOwner
	}
	return nil
}

// publish sends a lifecycle event once the write is committed.
// Failures are logged and never fail the request.
func (s *CourseService) publish(ctx context.Context, eventType string, courseID, userID int64) {
	if s.events == nil {
		logger.FromContext(ctx).Debugw("course events disabled, skipping publishing", "type", eventType, "courseID", courseID)
		return
	}

	event := models.CourseEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		CourseID:  courseID,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
	}

	s.afterCommit(ctx, func(ctx context.Context) {
		log := logger.FromContext(ctx)
		if err := s.events.Publish(ctx, event); err != nil {
			log.Errorw("failed to publish course event", "event_id", event.EventID, "type", eventType, "error", err)
			return
		}
		log.Infow("course event published", "event_id", event.EventID, "type", eventType, "courseID", courseID)
	})
}
