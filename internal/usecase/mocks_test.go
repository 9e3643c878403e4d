package usecase

import (
	"context"
	"errors"
	"time"

	"decor-marketplace/internal/data/entity"
	"decor-marketplace/internal/data/repository"
	"decor-marketplace/pkg/payment"

	"github.com/google/uuid"
)

var errFakeStore = errors.New("store unavailable")

// ==================== BOOKING REPO ====================

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
	fail     bool

	// runs before MarkPaid checks the row, for racing a concurrent
	// delete against the settle sequence
	beforeMarkPaid func()
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if f.fail {
		return errFakeStore
	}
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if f.fail {
		return nil, errFakeStore
	}
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) FindByUserEmail(ctx context.Context, email, sortBy string, limit, offset int) ([]*entity.Booking, error) {
	if f.fail {
		return nil, errFakeStore
	}
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.UserEmail == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUserEmail(ctx context.Context, email string) (int64, error) {
	list, err := f.FindByUserEmail(ctx, email, "", 0, 0)
	return int64(len(list)), err
}

func (f *fakeBookingRepo) FindByDecoratorEmail(ctx context.Context, email string, limit, offset int) ([]*entity.Booking, error) {
	if f.fail {
		return nil, errFakeStore
	}
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.DecoratorEmail != nil && *b.DecoratorEmail == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByDecoratorEmail(ctx context.Context, email string) (int64, error) {
	list, err := f.FindByDecoratorEmail(ctx, email, 0, 0)
	return int64(len(list)), err
}

func (f *fakeBookingRepo) FindAll(ctx context.Context, status, sortBy string, limit, offset int) ([]*entity.Booking, error) {
	if f.fail {
		return nil, errFakeStore
	}
	var out []*entity.Booking
	for _, b := range f.bookings {
		if status == "" || string(b.Status) == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountAll(ctx context.Context, status string) (int64, error) {
	list, err := f.FindAll(ctx, status, "", 0, 0)
	return int64(len(list)), err
}

func (f *fakeBookingRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	if f.fail {
		return nil, errFakeStore
	}
	out := make(map[string]int64)
	for _, b := range f.bookings {
		out[string(b.Status)]++
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateFields(ctx context.Context, id uuid.UUID, bookingDate time.Time, venue, notes *string) error {
	if f.fail {
		return errFakeStore
	}
	b, ok := f.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.BookingDate = bookingDate
	b.Venue = venue
	b.Notes = notes
	return nil
}

func (f *fakeBookingRepo) Assign(ctx context.Context, id uuid.UUID, decoratorEmail, decoratorName string, assignedAt time.Time) (int64, error) {
	if f.fail {
		return 0, errFakeStore
	}
	b, ok := f.bookings[id]
	if !ok || b.Status != entity.BookingStatusPending {
		return 0, nil
	}
	b.DecoratorEmail = &decoratorEmail
	b.DecoratorName = &decoratorName
	b.Status = entity.BookingStatusAssigned
	b.AssignedAt = &assignedAt
	if b.StatusHistory == nil {
		b.StatusHistory = entity.StatusHistory{}
	}
	b.StatusHistory[string(entity.BookingStatusAssigned)] = assignedAt
	return 1, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	if f.fail {
		return 0, errFakeStore
	}
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return 0, nil
	}
	b.Status = to
	if b.StatusHistory == nil {
		b.StatusHistory = entity.StatusHistory{}
	}
	b.StatusHistory[string(to)] = time.Now()
	return 1, nil
}

func (f *fakeBookingRepo) DeleteUnpaid(ctx context.Context, id uuid.UUID, email string) (int64, error) {
	if f.fail {
		return 0, errFakeStore
	}
	b, ok := f.bookings[id]
	if !ok || b.UserEmail != email || b.IsPaid || !b.Status.Cancellable() {
		return 0, nil
	}
	delete(f.bookings, id)
	return 1, nil
}

func (f *fakeBookingRepo) MarkPaid(ctx context.Context, id uuid.UUID, paymentID uuid.UUID, paidAt time.Time) (int64, error) {
	if f.fail {
		return 0, errFakeStore
	}
	if f.beforeMarkPaid != nil {
		f.beforeMarkPaid()
	}
	b, ok := f.bookings[id]
	if !ok || b.IsPaid {
		return 0, nil
	}
	b.IsPaid = true
	b.PaymentID = &paymentID
	b.PaidAt = &paidAt
	return 1, nil
}

func (f *fakeBookingRepo) FindUnpaidOlderThan(ctx context.Context, cutoff time.Time) ([]*entity.Booking, error) {
	if f.fail {
		return nil, errFakeStore
	}
	var out []*entity.Booking
	for _, b := range f.bookings {
		if !b.IsPaid && b.CreatedAt.Before(cutoff) {
			out = append(out, b)
		}
	}
	return out, nil
}

// ==================== SERVICE REPO ====================

type fakeServiceRepo struct {
	services   map[uuid.UUID]*entity.Service
	increments int
	decrements int
	fail       bool
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
}

func (f *fakeServiceRepo) Create(ctx context.Context, service *entity.Service) error {
	if f.fail {
		return errFakeStore
	}
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	if f.fail {
		return nil, errFakeStore
	}
	return f.services[id], nil
}

func (f *fakeServiceRepo) FindAll(ctx context.Context, search, category string, limit, offset int) ([]*entity.Service, error) {
	if f.fail {
		return nil, errFakeStore
	}
	var out []*entity.Service
	for _, s := range f.services {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) CountAll(ctx context.Context, search, category string) (int64, error) {
	list, err := f.FindAll(ctx, search, category, 0, 0)
	return int64(len(list)), err
}

func (f *fakeServiceRepo) Update(ctx context.Context, service *entity.Service) error {
	if f.fail {
		return errFakeStore
	}
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.fail {
		return errFakeStore
	}
	delete(f.services, id)
	return nil
}

func (f *fakeServiceRepo) IncrementBookingCount(ctx context.Context, id uuid.UUID) error {
	if f.fail {
		return errFakeStore
	}
	if s, ok := f.services[id]; ok {
		s.BookingCount++
	}
	f.increments++
	return nil
}

func (f *fakeServiceRepo) DecrementBookingCount(ctx context.Context, id uuid.UUID) error {
	if f.fail {
		return errFakeStore
	}
	if s, ok := f.services[id]; ok && s.BookingCount > 0 {
		s.BookingCount--
	}
	f.decrements++
	return nil
}

// ==================== PAYMENT REPO ====================

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment
	fail     bool
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if f.fail {
		return errFakeStore
	}
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	if f.fail {
		return nil, errFakeStore
	}
	return f.payments[id], nil
}

func (f *fakePaymentRepo) FindByBookingAndTransaction(ctx context.Context, bookingID uuid.UUID, transactionID string) (*entity.Payment, error) {
	if f.fail {
		return nil, errFakeStore
	}
	for _, p := range f.payments {
		if p.BookingID == bookingID && p.TransactionID == transactionID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	if f.fail {
		return nil, errFakeStore
	}
	for _, p := range f.payments {
		if p.BookingID == bookingID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindByUserEmail(ctx context.Context, email string) ([]*entity.Payment, error) {
	if f.fail {
		return nil, errFakeStore
	}
	var out []*entity.Payment
	for _, p := range f.payments {
		if p.UserEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) FindByDecoratorEmail(ctx context.Context, email string) ([]*entity.Payment, error) {
	if f.fail {
		return nil, errFakeStore
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Payment, error) {
	if f.fail {
		return nil, errFakeStore
	}
	var out []*entity.Payment
	for _, p := range f.payments {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePaymentRepo) FindOrphaned(ctx context.Context, cutoff time.Time) ([]*entity.Payment, error) {
	if f.fail {
		return nil, errFakeStore
	}
	return nil, nil
}

func (f *fakePaymentRepo) CountAll(ctx context.Context) (int64, error) {
	if f.fail {
		return 0, errFakeStore
	}
	return int64(len(f.payments)), nil
}

func (f *fakePaymentRepo) SumAmount(ctx context.Context) (float64, error) {
	if f.fail {
		return 0, errFakeStore
	}
	var total float64
	for _, p := range f.payments {
		total += p.Amount
	}
	return total, nil
}

func (f *fakePaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.fail {
		return errFakeStore
	}
	delete(f.payments, id)
	return nil
}

// ==================== USER REPO ====================

type fakeUserRepo struct {
	users map[string]*entity.User
	fail  bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.fail {
		return errFakeStore
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.fail {
		return nil, errFakeStore
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.fail {
		return nil, errFakeStore
	}
	return f.users[email], nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	if f.fail {
		return nil, errFakeStore
	}
	var out []*entity.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	if f.fail {
		return 0, errFakeStore
	}
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if f.fail {
		return errFakeStore
	}
	f.users[user.Email] = user
	return nil
}

// ==================== SESSION REPO ====================

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.sessions[session.Token.String()] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	s, ok := f.sessions[token]
	if !ok || s.RevokedAt != nil || time.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	if s, ok := f.sessions[token]; ok {
		now := time.Now()
		s.RevokedAt = &now
	}
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	for _, s := range f.sessions {
		if s.UserID == userID {
			s.RevokedAt = &now
		}
	}
	return nil
}

// ==================== REVIEW REPO ====================

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) FindByServiceID(ctx context.Context, serviceID uuid.UUID) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, r := range f.reviews {
		if r.ServiceID == serviceID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByServiceAndUser(ctx context.Context, serviceID uuid.UUID, email string) (*entity.Review, error) {
	for _, r := range f.reviews {
		if r.ServiceID == serviceID && r.UserEmail == email {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) AverageRating(ctx context.Context, serviceID uuid.UUID) (float64, int64, error) {
	var sum, count int64
	for _, r := range f.reviews {
		if r.ServiceID == serviceID {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// ==================== PAYMENT PROVIDER ====================

type fakeProvider struct {
	session   *payment.CheckoutSession
	status    *payment.SessionStatus
	err       error
	createdIn []payment.CheckoutInput
}

func (f *fakeProvider) CreateCheckoutSession(ctx context.Context, in payment.CheckoutInput) (*payment.CheckoutSession, error) {
	f.createdIn = append(f.createdIn, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeProvider) RetrieveSession(ctx context.Context, sessionID string) (*payment.SessionStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.status, nil
}

// ==================== HELPERS ====================

type fakes struct {
	bookings *fakeBookingRepo
	services *fakeServiceRepo
	payments *fakePaymentRepo
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	reviews  *fakeReviewRepo
}

func newFakes() (*repository.Repository, *fakes) {
	f := &fakes{
		bookings: newFakeBookingRepo(),
		services: newFakeServiceRepo(),
		payments: newFakePaymentRepo(),
		users:    newFakeUserRepo(),
		sessions: newFakeSessionRepo(),
		reviews:  newFakeReviewRepo(),
	}
	repo := &repository.Repository{
		User:    f.users,
		Session: f.sessions,
		Service: f.services,
		Booking: f.bookings,
		Payment: f.payments,
		Review:  f.reviews,
	}
	return repo, f
}
