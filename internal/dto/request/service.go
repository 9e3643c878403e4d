package request

type CreateServiceRequest struct {
	Name           string  `json:"name" validate:"required,min=3,max=150"`
	Description    string  `json:"description" validate:"required,max=2000"`
	Category       string  `json:"category" validate:"required,max=50"`
	Price          float64 `json:"price" validate:"required,gt=0"`
	ImageURL       *string `json:"image_url,omitempty" validate:"omitempty,url"`
	DecoratorEmail string  `json:"decorator_email" validate:"required,email"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=3,max=150"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	ImageURL    *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type ListServicesRequest struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	PaginatedRequest
}
