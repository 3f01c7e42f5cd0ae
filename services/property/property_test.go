package property

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	propertyRepo "roomhive/database/repository/property"
	"roomhive/models"

	"go.uber.org/zap"
)

// fakePropertyStore is an in-memory PropertyRepository.
type fakePropertyStore struct {
	mu    sync.Mutex
	store map[string]*models.Property
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{store: make(map[string]*models.Property)}
}

func (s *fakePropertyStore) Create(ctx context.Context, p *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.store[p.ID] = &cp
	return nil
}

func (s *fakePropertyStore) GetByID(ctx context.Context, id string) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.store[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, propertyRepo.ErrNotFound
}

func (s *fakePropertyStore) ListAvailable(ctx context.Context, city string) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Property
	for _, p := range s.store {
		if p.IsAvailable() && (city == "" || p.City == city) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakePropertyStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Property
	for _, p := range s.store {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakePropertyStore) Update(ctx context.Context, p *models.Property) error {
	return s.Create(ctx, p)
}

func (s *fakePropertyStore) SetAvailability(ctx context.Context, id, availability string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.store[id]
	if !ok {
		return propertyRepo.ErrNotFound
	}
	p.Availability = availability
	return nil
}

func (s *fakePropertyStore) AddPhoto(ctx context.Context, id, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.store[id]
	if !ok {
		return propertyRepo.ErrNotFound
	}
	p.Photos = append(p.Photos, publicID)
	return nil
}

// fakeStorage records uploads and returns deterministic references.
type fakeStorage struct {
	uploads []string
}

func (s *fakeStorage) UploadFile(ctx context.Context, filePath, folder string) (string, error) {
	ref := folder + "/photo"
	s.uploads = append(s.uploads, ref)
	return ref, nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, publicID string) error { return nil }

func (s *fakeStorage) GetDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	return "https://cdn.example/" + publicID, nil
}

func newTestService(store *fakePropertyStore) *DefaultPropertyService {
	return &DefaultPropertyService{
		Repo:    store,
		Storage: &fakeStorage{},
		Logger:  zap.NewNop(),
	}
}

func TestCreatePropertyDefaultsToAvailable(t *testing.T) {
	store := newFakePropertyStore()
	svc := newTestService(store)

	p, err := svc.Create(context.Background(), CreatePropertyInput{
		OwnerID: "owner-1",
		Title:   "2BHK near campus",
		City:    "Pune",
		Rent:    8000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Availability != models.PropertyAvailable {
		t.Errorf("Availability = %q, want available", p.Availability)
	}
	if p.ID == "" {
		t.Error("property has no ID")
	}
}

func TestCreatePropertyValidation(t *testing.T) {
	svc := newTestService(newFakePropertyStore())

	cases := []CreatePropertyInput{
		{OwnerID: "o", City: "Pune", Rent: 8000},              // missing title
		{OwnerID: "o", Title: "Room", Rent: 8000},             // missing city
		{OwnerID: "o", Title: "Room", City: "Pune", Rent: 0},  // no rent
		{OwnerID: "o", Title: "Room", City: "Pune", Rent: -5}, // negative rent
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidProperty) {
			t.Errorf("case %d: err = %v, want ErrInvalidProperty", i, err)
		}
	}
}

func TestListAvailableFiltersByCity(t *testing.T) {
	store := newFakePropertyStore()
	svc := newTestService(store)

	seed := []models.Property{
		{ID: "p1", OwnerID: "o1", Title: "A", City: "Pune", Rent: 8000, Availability: models.PropertyAvailable},
		{ID: "p2", OwnerID: "o1", Title: "B", City: "Mumbai", Rent: 12000, Availability: models.PropertyAvailable},
		{ID: "p3", OwnerID: "o2", Title: "C", City: "Pune", Rent: 9000, Availability: models.PropertyOccupied},
	}
	for i := range seed {
		store.Create(context.Background(), &seed[i])
	}

	pune, err := svc.ListAvailable(context.Background(), "Pune")
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(pune) != 1 || pune[0].ID != "p1" {
		t.Errorf("Pune listings = %+v, want just p1", pune)
	}

	all, err := svc.ListAvailable(context.Background(), "")
	if err != nil {
		t.Fatalf("ListAvailable all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d available listings, want 2", len(all))
	}
}

func TestSetAvailabilityOwnerOnly(t *testing.T) {
	store := newFakePropertyStore()
	store.Create(context.Background(), &models.Property{
		ID: "p1", OwnerID: "owner-1", Title: "A", City: "Pune", Rent: 8000,
		Availability: models.PropertyAvailable,
	})
	svc := newTestService(store)

	if err := svc.SetAvailability(context.Background(), "p1", "stranger", models.PropertyOccupied); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("stranger: err = %v, want ErrNotOwner", err)
	}
	if err := svc.SetAvailability(context.Background(), "p1", "owner-1", "sold"); !errors.Is(err, ErrInvalidProperty) {
		t.Fatalf("bad value: err = %v, want ErrInvalidProperty", err)
	}
	if err := svc.SetAvailability(context.Background(), "p1", "owner-1", models.PropertyOccupied); err != nil {
		t.Fatalf("owner: %v", err)
	}

	p, _ := store.GetByID(context.Background(), "p1")
	if p.Availability != models.PropertyOccupied {
		t.Errorf("Availability = %q, want occupied", p.Availability)
	}
}

func TestAttachPhoto(t *testing.T) {
	store := newFakePropertyStore()
	store.Create(context.Background(), &models.Property{
		ID: "p1", OwnerID: "owner-1", Title: "A", City: "Pune", Rent: 8000,
		Availability: models.PropertyAvailable,
	})
	svc := newTestService(store)

	if _, err := svc.AttachPhoto(context.Background(), "p1", "stranger", "/tmp/photo.jpg"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("stranger: err = %v, want ErrNotOwner", err)
	}

	ref, err := svc.AttachPhoto(context.Background(), "p1", "owner-1", "/tmp/photo.jpg")
	if err != nil {
		t.Fatalf("AttachPhoto: %v", err)
	}
	p, _ := store.GetByID(context.Background(), "p1")
	if len(p.Photos) != 1 || p.Photos[0] != ref {
		t.Errorf("Photos = %v, want [%s]", p.Photos, ref)
	}
}
