package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/course-api/internal/middlewares"
	"github.com/sbilibin2017/course-api/internal/services"
	"github.com/sbilibin2017/course-api/internal/validation"
)

// UserRegisterer defines the interface that the service must implement.
type UserRegisterer interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (int64, error)
}

var createUserRules = []validation.Rule{
	validation.Required("firstName"),
	validation.Required("lastName"),
	validation.Email("emailAddress"),
	validation.Required("password"),
}

// NewGetUserHandler returns the authenticated user.
// @Summary Current user
// @Description Returns the user identified by the Basic Auth credentials. The password hash is never included.
// @Tags users
// @Produce json
// @Security BasicAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} models.MessageResponse "Access Denied"
// @Router /users [get]
func NewGetUserHandler() http.HandlerFunc {
	return Handle(func(w http.ResponseWriter, r *http.Request) error {
		user, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			return MessageError(http.StatusUnauthorized, "Access Denied", nil)
		}

		writeJSON(w, http.StatusOK, user.Public())
		return nil
	})
}

// NewCreateUserHandler returns an HTTP handler for user registration.
// @Summary Create a user
// @Description Validates the payload, hashes the password and stores the user. Email addresses are unique.
// @Tags users
// @Accept json
// @Param request body models.CreateUserRequest true "New user"
// @Success 201 "Created, Location: /"
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /users [post]
func NewCreateUserHandler(svc UserRegisterer) http.HandlerFunc {
	return Handle(func(w http.ResponseWriter, r *http.Request) error {
		raw, err := decodeBody(r)
		if err != nil {
			return err
		}

		if msgs := validation.Validate(raw, createUserRules...); len(msgs) > 0 {
			return ValidationError(msgs...)
		}

		fields := bodyFields{raw: raw}
		_, err = svc.Register(r.Context(),
			fields.text("firstName"),
			fields.text("lastName"),
			fields.text("emailAddress"),
			fields.text("password"),
		)
		if err != nil {
			if errors.Is(err, services.ErrEmailInUse) {
				return ValidationError("Email address already in use")
			}
			return err
		}

		w.Header().Set("Location", "/")
		w.WriteHeader(http.StatusCreated)
		return nil
	})
}
