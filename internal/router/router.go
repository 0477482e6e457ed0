// Package router assembles the HTTP routes of the service.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sbilibin2017/course-api/internal/handlers"
	"github.com/sbilibin2017/course-api/internal/middlewares"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Routes holds the handlers and middlewares mounted by New.
type Routes struct {
	Welcome http.HandlerFunc

	GetUser    http.HandlerFunc
	CreateUser http.HandlerFunc

	ListCourses  http.HandlerFunc
	GetCourse    http.HandlerFunc
	CreateCourse http.HandlerFunc
	UpdateCourse http.HandlerFunc
	DeleteCourse http.HandlerFunc

	// Auth guards every route that needs a caller.
	Auth func(http.Handler) http.Handler
	// Tx wraps write routes in a database transaction. Optional.
	Tx func(http.Handler) http.Handler

	Log        *zap.SugaredLogger
	SwaggerURL string
}

// New builds the router:
//
//	GET    /                   welcome
//	GET    /swagger/*          API docs
//	GET    /api/users          (auth)
//	POST   /api/users
//	GET    /api/courses
//	POST   /api/courses        (auth, tx)
//	GET    /api/courses/{id}
//	PUT    /api/courses/{id}   (auth, tx)
//	DELETE /api/courses/{id}   (auth, tx)
func New(rt Routes) *chi.Mux {
	log := rt.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(log))

	// a known path with the wrong method is answered like an unknown route
	r.NotFound(handlers.RouteNotFound)
	r.MethodNotAllowed(handlers.RouteNotFound)

	r.Get("/", rt.Welcome)
	if rt.SwaggerURL != "" {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(rt.SwaggerURL)))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", rt.CreateUser)
		r.Get("/courses", rt.ListCourses)
		r.Get("/courses/{id}", rt.GetCourse)

		r.Group(func(r chi.Router) {
			r.Use(rt.Auth)
			r.Get("/users", rt.GetUser)

			r.Group(func(r chi.Router) {
				if rt.Tx != nil {
					r.Use(rt.Tx)
				}
				r.Post("/courses", rt.CreateCourse)
				r.Put("/courses/{id}", rt.UpdateCourse)
				r.Delete("/courses/{id}", rt.DeleteCourse)
			})
		})
	})

	return r
}
