package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/course-api/internal/middlewares"
	"github.com/sbilibin2017/course-api/internal/models"
	"github.com/sbilibin2017/course-api/internal/services"
	"github.com/sbilibin2017/course-api/internal/validation"
)

// CourseLister lists courses.
type CourseLister interface {
	List(ctx context.Context) ([]models.CourseWithOwnerDB, error)
}

// CourseGetter fetches a single course.
type CourseGetter interface {
	Get(ctx context.Context, courseID int64) (*models.CourseWithOwnerDB, error)
}

// CourseCreator creates courses.
type CourseCreator interface {
	Create(ctx context.Context, course *models.CourseDB) (int64, error)
}

// CourseUpdater updates courses on behalf of a user.
type CourseUpdater interface {
	Update(ctx context.Context, userID int64, course *models.CourseDB) error
}

// CourseDeleter deletes courses on behalf of a user.
type CourseDeleter interface {
	Delete(ctx context.Context, userID, courseID int64) error
}

var courseRules = []validation.Rule{
	validation.Required("title"),
	validation.Required("description"),
}

// NewListCoursesHandler returns every course with its owner.
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.CourseResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /courses [get]
func NewListCoursesHandler(svc CourseLister) http.HandlerFunc {
	return Handle(func(w http.ResponseWriter, r *http.Request) error {
		courses, err := svc.List(r.Context())
		if err != nil {
			return err
		}

		resp := make([]models.CourseResponse, 0, len(courses))
		for i := range courses {
			resp = append(resp, courses[i].Public())
		}

		writeJSON(w, http.StatusOK, resp)
		return nil
	})
}

// NewGetCourseHandler returns one course with its owner.
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.CourseResponse
// @Failure 404 {object} models.MessageResponse "Course not found"
// @Router /courses/{id} [get]
func NewGetCourseHandler(svc CourseGetter) http.HandlerFunc {
	return Handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := courseIDParam(r)
		if err != nil {
			return err
		}

		course, err := svc.Get(r.Context(), id)
		if err != nil {
			return courseError(err, "")
		}

		writeJSON(w, http.StatusOK, course.Public())
		return nil
	})
}

// NewCreateCourseHandler returns an HTTP handler for course creation.
// @Summary Create a course
// @Description The owner is userId from the payload when given, otherwise the authenticated user.
// @Tags courses
// @Accept json
// @Security BasicAuth
// @Param request body models.CourseRequest true "New course"
// @Success 201 "Created, Location: /api/courses/{id}"
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 401 {object} models.MessageResponse "Access Denied"
// @Router /courses [post]
func NewCreateCourseHandler(svc CourseCreator) http.HandlerFunc {
	return Handle(func(w http.ResponseWriter, r *http.Request) error {
		user, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			return MessageError(http.StatusUnauthorized, "Access Denied", nil)
		}

		raw, err := decodeBody(r)
		if err != nil {
			return err
		}

		fields := bodyFields{raw: raw}
		course := courseFromBody(&fields)
		course.UserID = user.UserID
		if ownerID := fields.optionalID("userId"); ownerID != nil {
			course.UserID = *ownerID
		}

		if msgs := append(validation.Validate(raw, courseRules...), fields.errs...); len(msgs) > 0 {
			return ValidationError(msgs...)
		}

		id, err := svc.Create(r.Context(), course)
		if err != nil {
			return courseError(err, "")
		}

		w.Header().Set("Location", fmt.Sprintf("/api/courses/%d", id))
		w.WriteHeader(http.StatusCreated)
		return nil
	})
}

// NewUpdateCourseHandler returns an HTTP handler for course updates.
// @Summary Update a course
// @Description Only the owner may update. The owner itself never changes.
// @Tags courses
// @Accept json
// @Security BasicAuth
// @Param id path int true "Course ID"
// @Param request body models.CourseRequest true "Course fields"
// @Success 204
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 401 {object} models.MessageResponse "Access Denied"
// @Failure 403 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse "Course not found"
// @Router /courses/{id} [put]
func NewUpdateCourseHandler(svc CourseUpdater) http.HandlerFunc {
	return Handle(func(w http.ResponseWriter, r *http.Request) error {
		user, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			return MessageError(http.StatusUnauthorized, "Access Denied", nil)
		}

		id, err := courseIDParam(r)
		if err != nil {
			return err
		}

		raw, err := decodeBody(r)
		if err != nil {
			return err
		}

		fields := bodyFields{raw: raw}
		course := courseFromBody(&fields)
		course.CourseID = id

		if msgs := append(validation.Validate(raw, courseRules...), fields.errs...); len(msgs) > 0 {
			return ValidationError(msgs...)
		}

		if err := svc.Update(r.Context(), user.UserID, course); err != nil {
			return courseError(err, "update")
		}

		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}

// NewDeleteCourseHandler returns an HTTP handler for course deletion.
// @Summary Delete a course
// @Tags courses
// @Security BasicAuth
// @Param id path int true "Course ID"
// @Success 204
// @Failure 401 {object} models.MessageResponse "Access Denied"
// @Failure 403 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse "Course not found"
// @Router /courses/{id} [delete]
func NewDeleteCourseHandler(svc CourseDeleter) http.HandlerFunc {
	return Handle(func(w http.ResponseWriter, r *http.Request) error {
		user, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			return MessageError(http.StatusUnauthorized, "Access Denied", nil)
		}

		id, err := courseIDParam(r)
		if err != nil {
			return err
		}

		if err := svc.Delete(r.Context(), user.UserID, id); err != nil {
			return courseError(err, "delete")
		}

		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}

// courseFromBody reads the editable course fields. userId is left to the caller.
func courseFromBody(fields *bodyFields) *models.CourseDB {
	return &models.CourseDB{
		Title:           fields.text("title"),
		Description:     fields.text("description"),
		EstimatedTime:   fields.optionalText("estimatedTime"),
		MaterialsNeeded: fields.optionalText("materialsNeeded"),
	}
}

// courseIDParam parses {id}. Anything that is not a positive integer cannot name a course.
func courseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, MessageError(http.StatusNotFound, "Course not found", err)
	}
	return id, nil
}

// courseError maps service errors to responses. action names the forbidden operation.
// A missing course always answers 404 {"message":"Course not found"}; courseIDParam
// uses the same wording.
func courseError(err error, action string) error {
	switch {
	case errors.Is(err, services.ErrCourseNotFound):
		return MessageError(http.StatusNotFound, "Course not found", err)
	case errors.Is(err, services.ErrNotCourseOwner):
		return MessageError(http.StatusForbidden, "Only the course owner can "+action+" this course", err)
	case errors.Is(err, services.ErrOwnerNotFound):
		return &HTTPError{
			Status: http.StatusBadRequest,
			Body:   models.ValidationErrorResponse{Errors: []string{"Course owner does not exist"}},
			Err:    err,
		}
	default:
		return err
	}
}
