package usecase

import (
	"context"

	"decor-marketplace/internal/data/repository"
	"decor-marketplace/internal/dto/response"
	"decor-marketplace/pkg/apperr"
	"decor-marketplace/pkg/cache"

	"go.uber.org/zap"
)

const dashboardCacheKey = "dashboard:stats"

type DashboardService interface {
	GetStats(ctx context.Context) (*response.DashboardResponse, error)
}

type dashboardService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewDashboardService(repo *repository.Repository, cache *cache.Cache, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*response.DashboardResponse, error) {
	var cached response.DashboardResponse
	if s.cache != nil && s.cache.GetJSON(ctx, dashboardCacheKey, &cached) {
		return &cached, nil
	}

	totalUsers, err := s.repo.User.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, apperr.Upstream(err, "failed to build dashboard")
	}

	totalServices, err := s.repo.Service.CountAll(ctx, "", "")
	if err != nil {
		s.log.Error("Failed to count services", zap.Error(err))
		return nil, apperr.Upstream(err, "failed to build dashboard")
	}

	totalBookings, err := s.repo.Booking.CountAll(ctx, "")
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, apperr.Upstream(err, "failed to build dashboard")
	}

	byStatus, err := s.repo.Booking.CountByStatus(ctx)
	if err != nil {
		s.log.Error("Failed to count bookings by status", zap.Error(err))
		return nil, apperr.Upstream(err, "failed to build dashboard")
	}

	totalPayments, err := s.repo.Payment.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count payments", zap.Error(err))
		return nil, apperr.Upstream(err, "failed to build dashboard")
	}

	revenue, err := s.repo.Payment.SumAmount(ctx)
	if err != nil {
		s.log.Error("Failed to sum revenue", zap.Error(err))
		return nil, apperr.Upstream(err, "failed to build dashboard")
	}

	stats := &response.DashboardResponse{
		TotalUsers:       totalUsers,
		TotalServices:    totalServices,
		TotalBookings:    totalBookings,
		BookingsByStatus: byStatus,
		TotalPayments:    totalPayments,
		TotalRevenue:     revenue,
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, dashboardCacheKey, stats)
	}

	return stats, nil
}
