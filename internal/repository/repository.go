// Package repository provides typed access to one clinic REST resource.
// Lists are replaced wholesale on every fetch; nothing is cached across
// screens.
package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/medpro/clinicapp/internal/clinicapi"
	"github.com/medpro/clinicapp/pkg/logging"
)

// Repository is parameterized by entity type and resource path. One
// instance exists per entity type.
type Repository[T any] struct {
	client   *clinicapi.Client
	resource string
	pageSize int
	sort     string
	logger   *logging.Logger
}

// New builds a repository for one resource. sort is the backend's
// "field,direction" list ordering.
func New[T any](client *clinicapi.Client, resource string, pageSize int, sort string, logger *logging.Logger) *Repository[T] {
	if pageSize <= 0 {
		pageSize = 100
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Repository[T]{
		client:   client,
		resource: resource,
		pageSize: pageSize,
		sort:     sort,
		logger:   logger.Component("repository"),
	}
}

// List fetches the first page of the collection. A response without the
// expected content envelope yields an empty list, not an error.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	q := url.Values{}
	q.Set("size", strconv.Itoa(r.pageSize))
	q.Set("sort", r.sort)

	var page struct {
		Content []T `json:"content"`
	}
	if err := r.client.Get(ctx, r.resource, q, &page); err != nil {
		var transport *clinicapi.TransportError
		var apiErr *clinicapi.APIError
		if errors.As(err, &transport) || errors.As(err, &apiErr) {
			return nil, err
		}
		// Decodable response without the content envelope.
		r.logger.Warn("unexpected list body", "resource", r.resource, "error", err)
		return []T{}, nil
	}
	if page.Content == nil {
		return []T{}, nil
	}
	return page.Content, nil
}

// Get fetches one entity's full detail, including the nested address the
// list endpoint omits.
func (r *Repository[T]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.client.Get(ctx, r.itemPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts a new entity to the collection.
func (r *Repository[T]) Create(ctx context.Context, payload any) (*T, error) {
	var out T
	if err := r.client.Post(ctx, r.resource, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update puts the payload to the collection root. The identifier travels
// in the body, not the URL path; this is the backend's contract.
func (r *Repository[T]) Update(ctx context.Context, payload any) (*T, error) {
	var out T
	if err := r.client.Put(ctx, r.resource, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete soft-deletes one entity. The backend deactivates the record; the
// caller must refresh the list on success.
func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, r.itemPath(id), nil)
}

// DeleteWithReason soft-deletes carrying a JSON body. Appointments cancel
// this way.
func (r *Repository[T]) DeleteWithReason(ctx context.Context, id int64, body any) error {
	return r.client.Delete(ctx, r.itemPath(id), body)
}

func (r *Repository[T]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.resource, id)
}
