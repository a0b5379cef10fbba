// Package contentstore wraps the document database holding product and order
// documents behind the small query/patch/create surface the storefront needs.
package contentstore

import (
	"context"

	"storefront-service/models"
)

// Client is the read/write surface of the content store. Reads are plain
// queries; writes are either a conditionless patch (last write wins) or a
// create with a store-assigned id. There is no compare-and-swap: concurrent
// patches of the same document race and the last write wins.
type Client interface {
	// FetchProduct returns the product with the given id, or nil when the
	// document does not exist.
	FetchProduct(ctx context.Context, id string) (*models.Product, error)

	// FetchProductStock returns the current stock for each of the given ids.
	// Unknown ids are simply absent from the result.
	FetchProductStock(ctx context.Context, ids []string) ([]models.ProductStock, error)

	// ListProducts returns one page of products and the total count.
	ListProducts(ctx context.Context, page, perPage int) ([]models.Product, int64, error)

	// SearchProducts returns products whose name starts with the given term,
	// ordered by name.
	SearchProducts(ctx context.Context, term string) ([]models.Product, error)

	// ProductSlugs returns the slugs of the products with the given ids.
	ProductSlugs(ctx context.Context, ids []string) ([]string, error)

	// Patch starts a conditionless update of the document with the given id.
	Patch(id string) Patch

	// CreateOrder inserts a new order document and returns it with its
	// store-assigned id filled in.
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)

	// OrdersByUser returns all orders placed by the given user, newest first.
	OrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
}

// Patch accumulates field updates for one document and applies them in a
// single commit.
type Patch interface {
	Set(fields map[string]interface{}) Patch
	Commit(ctx context.Context) error
}
