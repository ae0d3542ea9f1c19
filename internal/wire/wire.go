package wire

import (
	"net/http"

	"hotel-reservation/internal/adaptor"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/notify"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/middleware"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// guards are the route middlewares shared by every module.
type guards struct {
	auth  func(http.Handler) http.Handler
	admin func(http.Handler) http.Handler
}

// Wiring builds services, handlers and the router
func Wiring(repo *repository.Repository, notifier notify.Notifier, config *utils.Config, logger *zap.Logger) (*App, error) {
	service, err := usecase.NewService(repo, notifier, config, logger)
	if err != nil {
		return nil, err
	}
	return WiringWithService(service, config, logger), nil
}

// WiringWithService routes an already constructed service set.
func WiringWithService(service *usecase.Service, config *utils.Config, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, logger)
	return &App{
		Router:  setupRouter(handler, config, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	g := guards{
		auth:  middleware.Authenticate(middleware.NewTokenVerifier(config.JWT), logger),
		admin: middleware.Admin(logger),
	}

	// Apply routes
	wireRoom(r, handler.Room, g)
	wireBooking(r, handler.Booking, g)
	wirePayment(r, handler.Payment, g)
	wireReview(r, handler.Review, g)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseMethodNotAllowed(w)
	})

	return r
}
