package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/ratelimit"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAccess(
	r chi.Router,
	accessHandler *adaptor.AccessHandler,
	repo *repository.Repository,
	limiter *ratelimit.Limiter,
	log *zap.Logger,
) {
	r.Route("/api/access-codes", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/access-codes - issue a code, rate limited per user
		r.With(middleware.RateLimit(limiter, log)).Post("/", accessHandler.RequestCode)

		// POST /api/access-codes/verify - verify and burn a code
		r.Post("/verify", accessHandler.VerifyCode)
	})
}
