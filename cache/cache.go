package cache

import (
	"context"
	"errors"

	"stylehive/models"
)

// ProductCache is a read-through cache in front of the products collection.
// Cache failures are never fatal: callers fall back to the store on any error.
type ProductCache interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	Set(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

var ErrCacheMiss = errors.New("cache miss")

// Noop is used when no Redis instance is configured. Every Get misses.
type Noop struct{}

func (Noop) Get(context.Context, string) (*models.Product, error) { return nil, ErrCacheMiss }
func (Noop) Set(context.Context, *models.Product) error           { return nil }
func (Noop) Delete(context.Context, string) error                 { return nil }
