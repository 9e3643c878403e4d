package response

import (
	"time"

	"decor-marketplace/internal/data/entity"
)

type ServiceResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Price          float64   `json:"price"`
	ImageURL       *string   `json:"image_url,omitempty"`
	DecoratorEmail string    `json:"decorator_email"`
	BookingCount   int64     `json:"booking_count"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ServiceDetailResponse struct {
	ServiceResponse
	AverageRating float64          `json:"average_rating"`
	ReviewCount   int64            `json:"review_count"`
	Reviews       []ReviewResponse `json:"reviews,omitempty"`
}

// Helper converters
func ServiceToResponse(service *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:             service.ID.String(),
		Name:           service.Name,
		Description:    service.Description,
		Category:       service.Category,
		Price:          service.Price,
		ImageURL:       service.ImageURL,
		DecoratorEmail: service.DecoratorEmail,
		BookingCount:   service.BookingCount,
		IsActive:       service.IsActive,
		CreatedAt:      service.CreatedAt,
		UpdatedAt:      service.UpdatedAt,
	}
}

func ServicesToResponse(services []*entity.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, service := range services {
		out = append(out, ServiceToResponse(service))
	}
	return out
}
