package api

import (
	"net/http"
	"time"

	"campdir/internal/api/handler"
	"campdir/internal/app/service"
	"campdir/internal/common/security"
	"campdir/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	bootcampService *service.BootcampService,
	courseService *service.CourseService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a token from the Authorization header or the token cookie
	// and puts the claims in context; Authenticator enforces them on
	// protected routes.
	r.Use(jwtauth.Verify(security.TokenAuth, jwtauth.TokenFromHeader, tokenFromCookie))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	cfg := config.AppConfig
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService, cfg.JWTCookieExp, cfg.IsProduction())
		v1.Route("/auth", authHandler.RegisterRoutes)

		bootcampHandler := handler.NewBootcampHandler(bootcampService)
		courseHandler := handler.NewCourseHandler(courseService)
		v1.Route("/bootcamps", func(br chi.Router) {
			bootcampHandler.RegisterRoutes(br)
			// chi requires a consistent wildcard name, so the bootcamp id
			// is {id} here as well
			br.Route("/{id}/courses", courseHandler.RegisterNestedRoutes)
		})
		v1.Route("/courses", courseHandler.RegisterRoutes)
	})

	return r
}

func tokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie("token")
	if err != nil {
		return ""
	}
	return cookie.Value
}
