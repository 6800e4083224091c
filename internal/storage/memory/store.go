// Package memory provides an in-memory storage.Store used by handler and
// middleware tests. It mirrors the Postgres store's sentinel behaviour.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agrifield/agridir-be/internal/models"
	"github.com/agrifield/agridir-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps all records in maps guarded by one mutex.
type Store struct {
	mu               sync.Mutex
	users            map[string]models.User
	soils            map[string]models.SoilType
	soilOrder        []string
	distributors     map[string]models.Distributor
	distributorOrder []string
	activity         []models.ActivityLog
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]models.User),
		soils:        make(map[string]models.SoilType),
		distributors: make(map[string]models.Distributor),
	}
}

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) FindUserByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// RemoveUser deletes a user directly. Not part of storage.Store; tests use it
// to simulate an account deleted after token issuance.
func (s *Store) RemoveUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *Store) CreateSoilType(_ context.Context, soil models.SoilType) (models.SoilType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if soil.ID == "" {
		soil.ID = uuid.NewString()
	}
	now := time.Now()
	soil.CreatedAt = now
	soil.UpdatedAt = now
	s.soils[soil.ID] = soil
	s.soilOrder = append(s.soilOrder, soil.ID)
	return soil, nil
}

func (s *Store) ListSoilTypes(_ context.Context) ([]models.SoilType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.SoilType{}
	for _, id := range s.soilOrder {
		if soil, ok := s.soils[id]; ok {
			out = append(out, soil)
		}
	}
	return out, nil
}

func (s *Store) GetSoilType(_ context.Context, id string) (models.SoilType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	soil, ok := s.soils[id]
	if !ok {
		return models.SoilType{}, storage.ErrNotFound
	}
	return soil, nil
}

func (s *Store) UpdateSoilType(_ context.Context, soil models.SoilType) (models.SoilType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.soils[soil.ID]
	if !ok {
		return models.SoilType{}, storage.ErrNotFound
	}
	soil.CreatedAt = existing.CreatedAt
	soil.UpdatedAt = time.Now()
	s.soils[soil.ID] = soil
	return soil, nil
}

func (s *Store) DeleteSoilType(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.soils[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.soils, id)
	return nil
}

func (s *Store) CreateDistributor(_ context.Context, d models.Distributor) (models.Distributor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	s.distributors[d.ID] = d
	s.distributorOrder = append(s.distributorOrder, d.ID)
	return d, nil
}

func (s *Store) ListDistributors(_ context.Context) ([]models.Distributor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Distributor{}
	for _, id := range s.distributorOrder {
		if d, ok := s.distributors[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Store) GetDistributor(_ context.Context, id string) (models.Distributor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.distributors[id]
	if !ok {
		return models.Distributor{}, storage.ErrNotFound
	}
	return d, nil
}

func (s *Store) UpdateDistributor(_ context.Context, d models.Distributor) (models.Distributor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.distributors[d.ID]
	if !ok {
		return models.Distributor{}, storage.ErrNotFound
	}
	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = time.Now()
	s.distributors[d.ID] = d
	return d, nil
}

func (s *Store) DeleteDistributor(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.distributors[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.distributors, id)
	return nil
}

func (s *Store) AppendActivity(_ context.Context, entry models.ActivityLog) (models.ActivityLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now()
	s.activity = append(s.activity, entry)
	return entry, nil
}

func (s *Store) ListActivity(_ context.Context, limit int) ([]models.ActivityLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.ActivityLog{}
	for i := len(s.activity) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.activity[i])
	}
	return out, nil
}
