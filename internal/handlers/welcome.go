package handlers

import (
	"net/http"

	"github.com/sbilibin2017/course-api/internal/models"
)

// NewWelcomeHandler greets API clients at the root path.
// @Summary Welcome
// @Tags meta
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router / [get]
func NewWelcomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Welcome to the REST API project!"})
	}
}
