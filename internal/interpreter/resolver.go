package interpreter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"financas/internal/core"
	"financas/internal/store"
)

const (
	// IndexWindow is how many recent records an index reference may address.
	IndexWindow = 10
	// DescriptionWindow bounds the scan for a description reference.
	DescriptionWindow = 100
)

// Resolver turns a delete intent into a concrete record. Every call does
// its own fresh owner-scoped fetch instead of trusting a list the user saw
// earlier.
type Resolver struct {
	store store.Store
}

func NewResolver(s store.Store) *Resolver {
	return &Resolver{store: s}
}

// Resolve returns the transaction addressed by intent without deleting it.
func (r *Resolver) Resolve(ctx context.Context, owner string, intent Intent) (core.Transaction, error) {
	switch intent.Kind {
	case DeleteLast:
		recent, err := r.fetch(ctx, owner, 1)
		if err != nil {
			return core.Transaction{}, err
		}
		if len(recent) == 0 {
			return core.Transaction{}, core.ErrNotFound
		}
		return recent[0], nil

	case DeleteByIndex:
		if intent.Index < 1 || intent.Index > IndexWindow {
			return core.Transaction{}, core.ErrNotFound
		}
		recent, err := r.fetch(ctx, owner, IndexWindow)
		if err != nil {
			return core.Transaction{}, err
		}
		if intent.Index > len(recent) {
			return core.Transaction{}, core.ErrNotFound
		}
		return recent[intent.Index-1], nil

	case DeleteByDescription:
		query := Normalize(intent.Query)
		if query == "" {
			return core.Transaction{}, core.ErrNotFound
		}
		recent, err := r.fetch(ctx, owner, DescriptionWindow)
		if err != nil {
			return core.Transaction{}, err
		}
		for _, t := range recent {
			if strings.Contains(Normalize(t.Description), query) {
				return t, nil
			}
		}
		return core.Transaction{}, core.ErrNotFound
	}
	return core.Transaction{}, fmt.Errorf("resolve %s: not a delete intent", intent.Kind)
}

// Delete resolves intent and removes the target, scoped by owner.
func (r *Resolver) Delete(ctx context.Context, owner string, intent Intent) (core.Transaction, error) {
	target, err := r.Resolve(ctx, owner, intent)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := r.store.DeleteByID(ctx, owner, target.ID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.Transaction{}, err
		}
		return core.Transaction{}, fmt.Errorf("delete transaction %s: %w: %w", target.ID, core.ErrStoreUnavailable, err)
	}
	return target, nil
}

func (r *Resolver) fetch(ctx context.Context, owner string, limit int) ([]core.Transaction, error) {
	recent, err := r.store.SelectRecent(ctx, owner, limit, nil)
	if err != nil {
		return nil, storeError("select recent", err)
	}
	return recent, nil
}

// storeError marks a store failure as unavailable unless it is a caller
// precondition such as a missing owner.
func storeError(op string, err error) error {
	if errors.Is(err, core.ErrMissingOwner) || errors.Is(err, core.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, core.ErrStoreUnavailable, err)
}
