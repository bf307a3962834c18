package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cashflow/internal/model"
	"cashflow/internal/repository"
)

// ReferenceResolver resolves the external object behind a mutation's weak
// (type tag, object id) reference. A miss is not an error: unknown tags,
// malformed ids and absent rows all resolve to (nil, nil).
type ReferenceResolver interface {
	Resolve(ctx context.Context, typeTag, objectID string) (interface{}, error)
}

// ResolveFunc looks up one reference type by object id.
type ResolveFunc func(ctx context.Context, objectID string) (interface{}, error)

// ResolverRegistry dispatches lookups by type tag.
type ResolverRegistry struct {
	funcs map[string]ResolveFunc
}

// NewResolverRegistry creates an empty registry.
func NewResolverRegistry() *ResolverRegistry {
	return &ResolverRegistry{funcs: make(map[string]ResolveFunc)}
}

// Register binds a type tag to a lookup.
func (r *ResolverRegistry) Register(typeTag string, fn ResolveFunc) {
	r.funcs[typeTag] = fn
}

// Resolve looks the object up, returning (nil, nil) on any miss.
func (r *ResolverRegistry) Resolve(ctx context.Context, typeTag, objectID string) (interface{}, error) {
	fn, ok := r.funcs[typeTag]
	if !ok {
		return nil, nil
	}
	return fn(ctx, objectID)
}

// NewReferenceResolver builds the registry used by the ledger: withdraws
// for checkouts, donations for checkins.
func NewReferenceResolver(refRepo repository.ReferenceRepository) ReferenceResolver {
	registry := NewResolverRegistry()

	registry.Register(model.ReferenceTypeWithdraw, func(ctx context.Context, objectID string) (interface{}, error) {
		id, err := uuid.Parse(objectID)
		if err != nil {
			return nil, nil
		}
		w, err := refRepo.FindWithdraw(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, nil
			}
			return nil, err
		}
		return w, nil
	})

	registry.Register(model.ReferenceTypeDonation, func(ctx context.Context, objectID string) (interface{}, error) {
		id, err := uuid.Parse(objectID)
		if err != nil {
			return nil, nil
		}
		d, err := refRepo.FindDonation(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, nil
			}
			return nil, err
		}
		return d, nil
	})

	return registry
}
