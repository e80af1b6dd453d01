package httpserver

import (
	"net/http"
	"time"

	"family-connect-go/internal/config"
	"family-connect-go/internal/metrics"
	"family-connect-go/internal/transport/httpserver/handler"
	"family-connect-go/internal/transport/httpserver/middleware"
	"family-connect-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every route. m may be nil when metrics are disabled.
func NewRouter(cfg config.Config, handlers *handler.Handlers, admins middleware.ProfileReader, m *metrics.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSAllowedOrigins))

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/signup", handlers.SignUp)
		r.Post("/auth/signin", handlers.SignIn)
		r.Post("/auth/forgot-password", handlers.ForgotPassword)
		r.Post("/auth/verify-reset-token", handlers.VerifyResetToken)
		r.Post("/auth/reset-password", handlers.ResetPassword)

		r.Get("/users/{userId}", handlers.GetUser)
		r.Put("/users/{userId}", handlers.UpdateUser)
		r.Get("/users/{userId}/family-members", handlers.ListFamilyMembers)
		r.Post("/users/{userId}/family-members", handlers.AddFamilyMember)
		r.Put("/family-members/{id}", handlers.UpdateFamilyMember)
		r.Delete("/family-members/{id}", handlers.RemoveFamilyMember)

		r.Get("/discover/{userId}", handlers.Discover)

		r.Get("/connections/{userId}", handlers.ListConnections)
		r.Post("/connections", handlers.CreateConnection)
		r.Put("/connections/{id}", handlers.RespondConnection)
		r.Delete("/connections/{id}", handlers.DeleteConnection)

		r.Get("/threads/{userId}", handlers.ListThreads)
		r.Post("/threads", handlers.CreateThread)
		r.Put("/threads/{threadId}/read", handlers.MarkThreadRead)
		r.Get("/threads/{threadId}/unread", handlers.ThreadUnreadCount)
		r.Get("/messages/{threadId}", handlers.ListMessages)
		r.Post("/messages", handlers.SendMessage)
		r.Get("/users/{userId}/unread-count", handlers.TotalUnreadCount)

		r.Post("/users/{userId}/block", handlers.BlockUser)
		r.Delete("/users/{userId}/block/{blockedUserId}", handlers.UnblockUser)
		r.Get("/users/{userId}/blocked", handlers.ListBlockedUsers)
		r.Post("/reports", handlers.CreateReport)

		r.Get("/events", handlers.ListEvents)
		r.Post("/events", handlers.CreateEvent)
		r.Get("/events/{id}", handlers.GetEvent)
		r.Put("/events/{id}", handlers.UpdateEvent)
		r.Delete("/events/{id}", handlers.DeleteEvent)
		r.Post("/events/{id}/attend", handlers.AttendEvent)
		r.Delete("/events/{id}/attend/{userId}", handlers.UnattendEvent)
		r.Get("/events/{id}/attendees", handlers.ListEventAttendees)

		r.Get("/businesses", handlers.ListBusinesses)
		r.Post("/businesses", handlers.CreateBusiness)
		r.Get("/businesses/{id}", handlers.GetBusiness)
		r.Put("/businesses/{id}", handlers.UpdateBusiness)
		r.Delete("/businesses/{id}", handlers.DeleteBusiness)
		r.Get("/users/{userId}/businesses", handlers.ListUserBusinesses)
		r.Get("/welcome-cards", handlers.ListWelcomeCards)

		adminAuth := middleware.NewAdminAuth(admins, log)
		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuth.Middleware)

			r.Get("/reports", handlers.AdminListReports)
			r.Patch("/reports/{id}", handlers.AdminUpdateReport)
			r.Get("/blocks", handlers.AdminListBlocks)

			r.Get("/welcome-cards", handlers.AdminListWelcomeCards)
			r.Post("/welcome-cards", handlers.AdminCreateWelcomeCard)
			r.Put("/welcome-cards/{id}", handlers.AdminUpdateWelcomeCard)
			r.Delete("/welcome-cards/{id}", handlers.AdminDeleteWelcomeCard)
		})
	})

	return r
}
