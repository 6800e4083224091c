package storage

import (
	"context"
	"errors"

	"github.com/agrifield/agridir-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures the persistence operations auth needs.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
}

// SoilStore persists soil directory entries.
type SoilStore interface {
	CreateSoilType(ctx context.Context, soil models.SoilType) (models.SoilType, error)
	ListSoilTypes(ctx context.Context) ([]models.SoilType, error)
	GetSoilType(ctx context.Context, id string) (models.SoilType, error)
	UpdateSoilType(ctx context.Context, soil models.SoilType) (models.SoilType, error)
	DeleteSoilType(ctx context.Context, id string) error
}

// DistributorStore persists distributor directory entries.
type DistributorStore interface {
	CreateDistributor(ctx context.Context, d models.Distributor) (models.Distributor, error)
	ListDistributors(ctx context.Context) ([]models.Distributor, error)
	GetDistributor(ctx context.Context, id string) (models.Distributor, error)
	UpdateDistributor(ctx context.Context, d models.Distributor) (models.Distributor, error)
	DeleteDistributor(ctx context.Context, id string) error
}

// ActivityStore appends and lists audit entries. Appends are best-effort from
// the handlers' point of view; a failed append never fails the request.
type ActivityStore interface {
	AppendActivity(ctx context.Context, entry models.ActivityLog) (models.ActivityLog, error)
	ListActivity(ctx context.Context, limit int) ([]models.ActivityLog, error)
}

// Store bundles everything the HTTP layer needs.
type Store interface {
	UserStore
	SoilStore
	DistributorStore
	ActivityStore
}
