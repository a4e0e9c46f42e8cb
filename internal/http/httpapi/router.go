package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"agrifields/internal/domain"
	"agrifields/internal/http/handlers"
	"agrifields/internal/middleware"
)

type Options struct {
	CORSOrigins     []string
	DefaultLanguage domain.Language
	RegionLookup    middleware.RegionLookup
	// AIRatePerMinute limits the tutor and crop doctor per client IP.
	AIRatePerMinute int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(opts.CORSOrigins),
		middleware.Language(opts.DefaultLanguage, opts.RegionLookup),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/i18n/{lang}", app.Strings)

		r.Group(func(r chi.Router) {
			r.Use(app.Workspace)

			r.Get("/state", app.State)
			r.Post("/navigate", app.Navigate)
			r.Post("/start", app.StartJourney)
			r.Post("/language", app.SetLanguage)
			r.Post("/theme", app.ToggleTheme)

			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", app.Register)
				r.Post("/login", app.Login)
				r.Post("/logout", app.Logout)
			})
			r.Put("/profile", app.UpdateProfile)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(opts.AIRatePerMinute, time.Minute))
				r.Post("/teacher/messages", app.SendMessage)
				r.Post("/doctor/analyze", app.AnalyzeCrop)
			})
		})
	})

	return r
}
