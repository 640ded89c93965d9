package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/mouthpiecer/internal/middleware"
	"github.com/atinyakov/mouthpiecer/internal/ratelimit"
	"github.com/atinyakov/mouthpiecer/internal/service"
)

// Routes names the application, objects and view the router answers for.
type Routes struct {
	AppID            string
	APIKey           string
	Scene            string
	View             string
	UserObject       string
	MouthpieceObject string
}

// NewRouter constructs the HTTP handler of the sandbox record service.
//
// Routes:
//
//	POST   /v1/applications/{app}/session             → authHandler.Session
//	POST   /v1/objects/{user object}/records          → authHandler.CreateUser (API key)
//	GET    /v1/objects/{mouthpiece object}/fields     → schemaHandler.List (API key)
//	GET    /v1/pages/{scene}/views/{view}/records     → recordHandler.List (token)
//	POST   /v1/pages/{scene}/views/{view}/records     → recordHandler.Create (token)
//	PUT    /v1/pages/{scene}/views/{view}/records/{id} → recordHandler.Update (token)
//	DELETE /v1/pages/{scene}/views/{view}/records/{id} → recordHandler.Delete (token)
//
// Every request is checked for a JSON body, logged and rate limited per
// client address.
func NewRouter(
	routes Routes,
	authHandler *AuthHandler,
	recordHandler *RecordHandler,
	schemaHandler *SchemaHandler,
	authz middleware.Authorizer,
	limiter *ratelimit.KeyedRateLimiter,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.RateLimit(limiter))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/applications/"+routes.AppID+"/session", authHandler.Session)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAppID(routes.AppID))
			r.Use(middleware.RequireAPIKey(routes.APIKey))
			r.Post("/objects/"+routes.UserObject+"/records", authHandler.CreateUser)
			r.Get("/objects/"+routes.MouthpieceObject+"/fields", schemaHandler.List)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAppID(routes.AppID))
			r.Use(middleware.TokenAuth(authz, service.ErrUnauthorized))
			r.Route("/pages/"+routes.Scene+"/views/"+routes.View+"/records", func(r chi.Router) {
				r.Get("/", recordHandler.List)
				r.Post("/", recordHandler.Create)
				r.Put("/{id}", recordHandler.Update)
				r.Delete("/{id}", recordHandler.Delete)
			})
		})
	})

	return r
}
