package router

import (
	"net/http"

	"github.com/eliteassociate/realty-service/internal/auth"
	"github.com/eliteassociate/realty-service/internal/handler"
	"github.com/eliteassociate/realty-service/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Profile  *handler.ProfileHandler
	Property *handler.PropertyHandler
	Contact  *handler.ContactHandler
	Admin    *handler.AdminHandler
}

// New wires the full route table. Public routes are open, authenticated
// routes sit behind JWTAuth, admin routes behind JWTAuth plus AdminOnly.
func New(h Handlers, verifier *auth.Issuer, users middleware.UserLoader, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	authGate := middleware.JWTAuth(verifier, users, logger)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Elite Properties API is running"}`))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", h.Auth.Signup)
		r.Post("/login", h.Auth.Login)
		r.Post("/verify-email-otp", h.Auth.VerifyEmailOTP)
		r.Post("/resend-verification-otp", h.Auth.ResendVerificationOTP)
		r.Post("/forgot-password", h.Auth.ForgotPassword)
		r.Post("/verify-otp", h.Auth.VerifyResetOTP)
		r.Post("/reset-password", h.Auth.ResetPassword)
		r.Post("/resend-otp", h.Auth.ResendResetOTP)
	})

	r.Route("/api/profile", func(r chi.Router) {
		r.Use(authGate)
		r.Get("/", h.Profile.Get)
		r.Put("/", h.Profile.Update)
	})

	r.Route("/api/property", func(r chi.Router) {
		r.Get("/posts", h.Property.List)
		r.Get("/posts/{id}", h.Property.Get)
		r.Get("/filter", h.Property.List)
		r.Get("/stats", h.Property.Stats)

		r.Group(func(r chi.Router) {
			r.Use(authGate)
			r.Post("/posts", h.Property.Create)
			r.Get("/posts/user/my-posts", h.Property.MyPosts)
			r.Put("/posts/{id}", h.Property.Update)
			r.Delete("/posts/{id}", h.Property.Delete)
			r.Post("/upload/pictures/{id}", h.Property.UploadPictures)
			r.Post("/upload/videos/{id}", h.Property.UploadVideos)
			r.Delete("/pictures/{id}", h.Property.RemovePicture)
			r.Delete("/videos/{id}", h.Property.RemoveVideo)
		})
	})

	r.Post("/api/contact", h.Contact.Submit)
	r.Post("/api/contact/schedule-meeting", h.Contact.ScheduleMeeting)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authGate)
		r.Use(middleware.AdminOnly)

		r.Get("/users", h.Admin.ListUsers)
		r.Get("/users/{id}", h.Admin.GetUser)
		r.Delete("/users/{id}", h.Admin.DeleteUser)

		r.Get("/properties", h.Property.ListAll)
		r.Get("/properties/{id}", h.Property.GetAny)
		r.Put("/properties/{id}", h.Property.Update)
		r.Delete("/properties/{id}", h.Property.Purge)
		r.Put("/properties/{id}/status", h.Property.UpdateStatus)
		r.Get("/stats", h.Property.Stats)

		r.Get("/contacts", h.Admin.ListContacts)
		r.Get("/contacts/{id}", h.Admin.GetContact)
		r.Delete("/contacts/{id}", h.Admin.DeleteContact)

		r.Get("/schedule-meetings", h.Admin.ListMeetings)
		r.Get("/schedule-meetings/{id}", h.Admin.GetMeeting)
		r.Put("/schedule-meetings/{id}/status", h.Admin.UpdateMeetingStatus)
		r.Delete("/schedule-meetings/{id}", h.Admin.DeleteMeeting)
	})

	return r
}
