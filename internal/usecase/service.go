package usecase

import (
	"decor-marketplace/internal/data/repository"
	"decor-marketplace/pkg/cache"
	"decor-marketplace/pkg/payment"
	"decor-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Catalog   CatalogService
	Booking   BookingService
	Payment   PaymentService
	Review    ReviewService
	Dashboard DashboardService
}

func NewService(repo *repository.Repository, provider payment.Provider, cache *cache.Cache, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, config, log),
		User:      NewUserService(repo.User, log),
		Catalog:   NewCatalogService(repo, cache, log),
		Booking:   NewBookingService(repo, log),
		Payment:   NewPaymentService(repo, provider, config, log),
		Review:    NewReviewService(repo, cache, log),
		Dashboard: NewDashboardService(repo, cache, log),
	}
}
