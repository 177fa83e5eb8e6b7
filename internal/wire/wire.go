package wire

import (
	"net/http"
	"time"

	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/notify"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/ratelimit"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes services, handlers and the router.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	notifier := notify.NewLogDispatcher(logger)
	service := usecase.NewService(repo, config, notifier, logger)
	handler := adaptor.NewHandler(service, config.Payment.WebhookSecret, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	accessLimiter := ratelimit.New(
		ratelimit.NewMemoryStore(),
		config.RateLimit.MaxRequests,
		time.Duration(config.RateLimit.WindowSeconds)*time.Second,
	)

	wireRoom(r, handler.Room, handler.Availability)
	wireBooking(r, handler.Booking, repo, logger)
	wireWebhook(r, handler.Webhook)
	wireAccess(r, handler.Access, repo, accessLimiter, logger)
	wireAdmin(r, handler.Admin, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
