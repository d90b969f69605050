package http

import (
	"net/http"

	"github.com/mind0bender/phew/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the phew API.
//
// Routes:
//
//	POST /api/command        → commandHandler.Command
//	GET  /api/user           → commandHandler.CurrentUser
//	POST /login              → authHandler.Login (continuation second leg)
//	POST /signup             → authHandler.Signup (continuation second leg)
//	GET  /logout             → authHandler.Logout
//	GET  /verifyme/{token}   → verifyHandler.VerifyInfo
//	POST /verifyme/{token}   → verifyHandler.Verify
//	POST /deleteme/{token}   → verifyHandler.Delete
//
// Every route passes through request logging and session resolution; the
// command endpoint additionally requires a JSON body. Command-level
// authorization happens inside the dispatcher, not here.
func NewRouter(
	commandHandler *CommandHandler,
	authHandler *AuthHandler,
	verifyHandler *VerifyHandler,
	auth middleware.Identifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.SessionAuth(auth, logger))

	r.Route("/api", func(r chi.Router) {
		r.With(chiMiddleware.AllowContentType("application/json")).
			Post("/command", commandHandler.Command)
		r.Get("/user", commandHandler.CurrentUser)
	})

	// Continuation endpoints accept the form fields staged by the command
	// layer.
	r.Post("/login", authHandler.Login)
	r.Post("/signup", authHandler.Signup)
	r.Get("/logout", authHandler.Logout)

	r.Route("/verifyme/{token}", func(r chi.Router) {
		r.Get("/", verifyHandler.VerifyInfo)
		r.Post("/", verifyHandler.Verify)
	})
	r.Post("/deleteme/{token}", verifyHandler.Delete)

	return r
}
