package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobfinder/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, health *handlers.HealthHandler, cv *handlers.CVHandler, jobs *handlers.JobsHandler, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	// CV matching
	cvg := v1.Group("/cv")
	cvg.Post("/upload", cv.Upload)
	cvg.Post("/match-text", cv.MatchText)
	cvg.Post("/explain-match", cv.Explain)
	cvg.Get("/stats", cv.Stats)

	// Job catalog and feedback; mutating routes require a token
	jg := v1.Group("/jobs")
	jg.Get("/offers", jobs.Offers)
	jg.Get("/likes", jobs.Likes)
	jg.Post("/", authMW, jobs.Ingest)
	jg.Post("/likes/:reference", authMW, jobs.Rate)
}
