package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingRepo "roomhive/database/repository/booking"
	propertyRepo "roomhive/database/repository/property"
	userRepo "roomhive/database/repository/user"
	"roomhive/models"

	"go.mongodb.org/mongo-driver/bson"
)

var errMockGateway = errors.New("mock gateway error")

// mockBookingRepo implements bookingRepo.BookingRepository for testing.
// Unset func fields fall back to an in-memory store keyed by booking ID.
type mockBookingRepo struct {
	mu       sync.Mutex
	store    map[string]*models.Booking
	coupons  map[string]bool
	Creates  int
	CreateFn func(ctx context.Context, b *models.Booking) error
	CouponFn func(ctx context.Context, id, coupon string) (bool, error)
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{
		store:   make(map[string]*models.Booking),
		coupons: make(map[string]bool),
	}
}

func (m *mockBookingRepo) put(b *models.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.store[b.ID] = &cp
}

func (m *mockBookingRepo) get(id string) *models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.store[id]; ok {
		cp := *b
		return &cp
	}
	return nil
}

func (m *mockBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	m.mu.Lock()
	m.Creates++
	m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.put(b)
	return nil
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if b := m.get(id); b != nil {
		return b, nil
	}
	return nil, bookingRepo.ErrNotFound
}

func (m *mockBookingRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.store {
		if b.CheckoutSessionID == sessionID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (m *mockBookingRepo) ListByRenter(ctx context.Context, renterID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.store {
		if b.RenterID == renterID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.store {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) LatestPaidByRenter(ctx context.Context, renterID string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.Booking
	for _, b := range m.store {
		if b.RenterID != renterID || b.Status != models.BookingPaid {
			continue
		}
		if latest == nil || b.CreatedAt.After(latest.CreatedAt) {
			latest = b
		}
	}
	if latest == nil {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *mockBookingRepo) SetCheckoutSession(ctx context.Context, id, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.CheckoutSessionID = sessionID
	return nil
}

func (m *mockBookingRepo) SetApproval(ctx context.Context, id string, status models.ApprovalStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.ApprovalStatus = status
	return nil
}

func (m *mockBookingRepo) MarkPaidIfPending(ctx context.Context, id string) (bool, error) {
	return m.transition(id, models.BookingPending, models.BookingPaid)
}

func (m *mockBookingRepo) CancelIfPending(ctx context.Context, id string) (bool, error) {
	return m.transition(id, models.BookingPending, models.BookingCancelled)
}

func (m *mockBookingRepo) transition(id string, from, to models.BookingStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (m *mockBookingRepo) SetCouponIfUnset(ctx context.Context, id, coupon string) (bool, error) {
	if m.CouponFn != nil {
		return m.CouponFn(ctx, id, coupon)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store[id]
	if !ok {
		return false, bookingRepo.ErrNotFound
	}
	if b.Coupon != "" {
		return false, nil
	}
	if m.coupons[coupon] {
		return false, bookingRepo.ErrCouponConflict
	}
	b.Coupon = coupon
	m.coupons[coupon] = true
	return true, nil
}

// mockPropertyRepo implements propertyRepo.PropertyRepository for testing.
type mockPropertyRepo struct {
	mu    sync.Mutex
	store map[string]*models.Property
}

func newMockPropertyRepo(props ...*models.Property) *mockPropertyRepo {
	m := &mockPropertyRepo{store: make(map[string]*models.Property)}
	for _, p := range props {
		cp := *p
		m.store[p.ID] = &cp
	}
	return m
}

func (m *mockPropertyRepo) Create(ctx context.Context, p *models.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.store[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, propertyRepo.ErrNotFound
}

func (m *mockPropertyRepo) ListAvailable(ctx context.Context, city string) ([]models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Property
	for _, p := range m.store {
		if p.IsAvailable() && (city == "" || p.City == city) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Property
	for _, p := range m.store {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPropertyRepo) Update(ctx context.Context, p *models.Property) error {
	return m.Create(ctx, p)
}

func (m *mockPropertyRepo) SetAvailability(ctx context.Context, id, availability string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return propertyRepo.ErrNotFound
	}
	p.Availability = availability
	return nil
}

func (m *mockPropertyRepo) AddPhoto(ctx context.Context, id, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return propertyRepo.ErrNotFound
	}
	p.Photos = append(p.Photos, publicID)
	return nil
}

// mockUserRepo implements userRepo.UserRepository for testing.
type mockUserRepo struct {
	mu    sync.Mutex
	store map[string]*models.User
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	m := &mockUserRepo{store: make(map[string]*models.User)}
	for _, u := range users {
		cp := *u
		m.store[u.ID] = &cp
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.store[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, userRepo.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, u *models.User) error {
	return m.Create(ctx, u)
}

func (m *mockUserRepo) SetFields(ctx context.Context, id string, fields bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return userRepo.ErrNotFound
	}
	return nil
}

// mockGateway implements PaymentGateway for testing.
type mockGateway struct {
	Calls      int
	LastParams models.CheckoutParams
	CreateFn   func(ctx context.Context, params models.CheckoutParams) (*models.CheckoutSession, error)
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, params models.CheckoutParams) (*models.CheckoutSession, error) {
	m.Calls++
	m.LastParams = params
	if m.CreateFn != nil {
		return m.CreateFn(ctx, params)
	}
	return &models.CheckoutSession{SessionID: "cs_test_1", RedirectURL: "https://checkout.example/cs_test_1"}, nil
}

// recordingPublisher captures published topics in order.
type recordingPublisher struct {
	mu     sync.Mutex
	Topics []string
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Topics = append(p.Topics, topic)
	return nil
}

// recordingScheduler captures expiry scheduling calls.
type recordingScheduler struct {
	BookingIDs []string
	At         []time.Time
}

func (s *recordingScheduler) ScheduleExpiry(ctx context.Context, bookingID string, at time.Time) error {
	s.BookingIDs = append(s.BookingIDs, bookingID)
	s.At = append(s.At, at)
	return nil
}
