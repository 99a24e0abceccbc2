package models

import "context"

// Model is implemented by every persisted entity.
type Model interface {
	Key() string     // Key returns the primary key
	Validate() error // Validate checks the entity before it is written
}

// Repository defines the data access operations shared by the stores.
type Repository[T Model] interface {
	Create(ctx context.Context, model T) error
	Get(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]T, error)
}
