package usecase

import (
	"context"
	"time"

	"decor-marketplace/internal/data/entity"
	"decor-marketplace/internal/data/repository"
	"decor-marketplace/internal/dto/request"
	"decor-marketplace/internal/dto/response"
	"decor-marketplace/pkg/apperr"
	"decor-marketplace/pkg/cache"
	"decor-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	Create(ctx context.Context, userEmail string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]response.ReviewResponse, error)
}

type reviewService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewReviewService(repo *repository.Repository, cache *cache.Cache, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (s *reviewService) Create(ctx context.Context, userEmail string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperr.Invalid("invalid service id")
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to check service", zap.Error(err), zap.String("service_id", serviceID.String()))
		return nil, apperr.Upstream(err, "failed to check service")
	}
	if service == nil {
		return nil, apperr.NotFound("service not found")
	}

	existing, err := s.repo.Review.FindByServiceAndUser(ctx, serviceID, userEmail)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to check existing review")
	}
	if existing != nil {
		return nil, apperr.Conflict("you already reviewed this service")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ServiceID: serviceID,
		UserEmail: userEmail,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
			zap.String("user_email", userEmail))
		return nil, apperr.Upstream(err, "failed to create review")
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("service_id", serviceID.String()))

	// The service detail embeds reviews and the average rating.
	if s.cache != nil {
		s.cache.Delete(ctx, serviceDetailKey(serviceID))
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) ListByService(ctx context.Context, serviceID uuid.UUID) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByServiceID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err), zap.String("service_id", serviceID.String()))
		return nil, apperr.Upstream(err, "failed to list reviews")
	}

	return response.ReviewsToResponse(reviews), nil
}
