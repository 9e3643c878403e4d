package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"decor-marketplace/internal/data/entity"
	"decor-marketplace/internal/dto/request"
	"decor-marketplace/internal/dto/response"
	"decor-marketplace/pkg/apperr"
	"decor-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBookingService struct {
	createFn func(ctx context.Context, userEmail string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	cancelFn func(ctx context.Context, id uuid.UUID, userEmail string) error
}

func (s *stubBookingService) Create(ctx context.Context, userEmail string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return s.createFn(ctx, userEmail, req)
}

func (s *stubBookingService) Get(ctx context.Context, id uuid.UUID, email, role string) (*response.BookingResponse, error) {
	return nil, apperr.NotFound("booking not found")
}

func (s *stubBookingService) ListByUser(ctx context.Context, email, sortBy string, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error) {
	return response.NewPaginatedResponse([]response.BookingResponse{}, page, perPage, 0), nil
}

func (s *stubBookingService) ListByDecorator(ctx context.Context, email string, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error) {
	return response.NewPaginatedResponse([]response.BookingResponse{}, page, perPage, 0), nil
}

func (s *stubBookingService) ListAll(ctx context.Context, status, sortBy string, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error) {
	return response.NewPaginatedResponse([]response.BookingResponse{}, page, perPage, 0), nil
}

func (s *stubBookingService) Update(ctx context.Context, id uuid.UUID, userEmail string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	return nil, apperr.NotFound("booking not found")
}

func (s *stubBookingService) AssignDecorator(ctx context.Context, id uuid.UUID, req *request.AssignDecoratorRequest) (*response.BookingResponse, error) {
	return nil, apperr.NotFound("booking not found")
}

func (s *stubBookingService) UpdateStatus(ctx context.Context, id uuid.UUID, email, role string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	return nil, apperr.NotFound("booking not found")
}

func (s *stubBookingService) Cancel(ctx context.Context, id uuid.UUID, userEmail string) error {
	return s.cancelFn(ctx, id, userEmail)
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := utils.SetPrincipal(req.Context(), uuid.New(), "alice@example.com", string(entity.RoleCustomer))
	return req.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestCreateBookingHandler(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, userEmail string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
			assert.Equal(t, "alice@example.com", userEmail)
			return &response.BookingResponse{
				ID:          uuid.New().String(),
				ServiceID:   req.ServiceID,
				UserEmail:   userEmail,
				Status:      entity.BookingStatusPending,
				BookingDate: req.BookingDate,
			}, nil
		},
	}
	handler := NewBookingHandler(stub, zap.NewNop())

	body, _ := json.Marshal(request.CreateBookingRequest{
		ServiceID:   uuid.New().String(),
		BookingDate: "2026-10-01",
	})

	rec := httptest.NewRecorder()
	handler.CreateBooking(rec, authedRequest(http.MethodPost, "/api/bookings", body))

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["status"])
}

func TestCreateBookingHandlerBadBody(t *testing.T) {
	handler := NewBookingHandler(&stubBookingService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.CreateBooking(rec, authedRequest(http.MethodPost, "/api/bookings", []byte("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingHandlerUnauthenticated(t *testing.T) {
	handler := NewBookingHandler(&stubBookingService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()
	handler.CreateBooking(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCancelBookingHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", apperr.NotFound("booking not found"), http.StatusNotFound},
		{"forbidden", apperr.Forbidden("not yours"), http.StatusForbidden},
		{"paid", apperr.Conflict("paid booking cannot be cancelled"), http.StatusConflict},
		{"store down", apperr.Upstream(assert.AnError, "failed to cancel booking"), http.StatusBadGateway},
		{"ok", nil, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubBookingService{
				cancelFn: func(ctx context.Context, id uuid.UUID, userEmail string) error {
					return tc.err
				},
			}
			handler := NewBookingHandler(stub, zap.NewNop())

			router := chi.NewRouter()
			router.Delete("/api/bookings/{id}", handler.CancelBooking)

			req := authedRequest(http.MethodDelete, "/api/bookings/"+uuid.New().String(), nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestCancelBookingHandlerBadID(t *testing.T) {
	handler := NewBookingHandler(&stubBookingService{}, zap.NewNop())

	router := chi.NewRouter()
	router.Delete("/api/bookings/{id}", handler.CancelBooking)

	req := authedRequest(http.MethodDelete, "/api/bookings/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
