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

type CatalogService interface {
	CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	GetService(ctx context.Context, id uuid.UUID) (*response.ServiceDetailResponse, error)
	ListServices(ctx context.Context, req *request.ListServicesRequest) (*response.PaginatedResponse[response.ServiceResponse], error)
	UpdateService(ctx context.Context, id uuid.UUID, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewCatalogService(repo *repository.Repository, cache *cache.Cache, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func serviceDetailKey(id uuid.UUID) string {
	return "service:detail:" + id.String()
}

func (s *catalogService) CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	decorator, err := s.repo.User.FindByEmail(ctx, req.DecoratorEmail)
	if err != nil {
		s.log.Error("Failed to check decorator", zap.Error(err), zap.String("email", req.DecoratorEmail))
		return nil, apperr.Upstream(err, "failed to check decorator")
	}
	if decorator == nil || decorator.Role != entity.RoleDecorator {
		return nil, apperr.Invalid("decorator %s not found", req.DecoratorEmail)
	}

	now := time.Now()
	service := &entity.Service{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
		DecoratorEmail: req.DecoratorEmail,
		IsActive:       true,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		s.log.Error("Failed to create service", zap.Error(err), zap.String("name", req.Name))
		return nil, apperr.Upstream(err, "failed to create service")
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("name", service.Name))

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) GetService(ctx context.Context, id uuid.UUID) (*response.ServiceDetailResponse, error) {
	var cached response.ServiceDetailResponse
	if s.cache != nil && s.cache.GetJSON(ctx, serviceDetailKey(id), &cached) {
		return &cached, nil
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get service", zap.Error(err), zap.String("service_id", id.String()))
		return nil, apperr.Upstream(err, "failed to get service")
	}
	if service == nil {
		return nil, apperr.NotFound("service not found")
	}

	reviews, err := s.repo.Review.FindByServiceID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load reviews", zap.Error(err), zap.String("service_id", id.String()))
		return nil, apperr.Upstream(err, "failed to load reviews")
	}

	avg, count, err := s.repo.Review.AverageRating(ctx, id)
	if err != nil {
		s.log.Error("Failed to compute rating", zap.Error(err), zap.String("service_id", id.String()))
		return nil, apperr.Upstream(err, "failed to compute rating")
	}

	detail := &response.ServiceDetailResponse{
		ServiceResponse: response.ServiceToResponse(service),
		AverageRating:   avg,
		ReviewCount:     count,
		Reviews:         response.ReviewsToResponse(reviews),
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, serviceDetailKey(id), detail)
	}

	return detail, nil
}

func (s *catalogService) ListServices(ctx context.Context, req *request.ListServicesRequest) (*response.PaginatedResponse[response.ServiceResponse], error) {
	services, err := s.repo.Service.FindAll(ctx, req.Search, req.Category, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list services", zap.Error(err))
		return nil, apperr.Upstream(err, "failed to list services")
	}

	total, err := s.repo.Service.CountAll(ctx, req.Search, req.Category)
	if err != nil {
		s.log.Error("Failed to count services", zap.Error(err))
		return nil, apperr.Upstream(err, "failed to list services")
	}

	return response.NewPaginatedResponse(response.ServicesToResponse(services), req.Page, req.Limit(), total), nil
}

func (s *catalogService) UpdateService(ctx context.Context, id uuid.UUID, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Invalid("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load service", zap.Error(err), zap.String("service_id", id.String()))
		return nil, apperr.Upstream(err, "failed to load service")
	}
	if service == nil {
		return nil, apperr.NotFound("service not found")
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.ImageURL != nil {
		service.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	service.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		s.log.Error("Failed to update service", zap.Error(err), zap.String("service_id", id.String()))
		return nil, apperr.Upstream(err, "failed to update service")
	}

	if s.cache != nil {
		s.cache.Delete(ctx, serviceDetailKey(id))
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load service", zap.Error(err), zap.String("service_id", id.String()))
		return apperr.Upstream(err, "failed to load service")
	}
	if service == nil {
		return apperr.NotFound("service not found")
	}

	if err := s.repo.Service.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete service", zap.Error(err), zap.String("service_id", id.String()))
		return apperr.Upstream(err, "failed to delete service")
	}

	if s.cache != nil {
		s.cache.Delete(ctx, serviceDetailKey(id))
	}

	return nil
}
