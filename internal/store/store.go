// Package store abstracts the hosted document store behind a
// subscription contract: callers subscribe to a collection and receive
// ordered snapshots until they unsubscribe. The catalog logic is tested
// against the in-memory implementation; production uses the Mongo
// change-stream watcher.
package store

import (
	"context"

	"inmueblesv-catalog/internal/models"
)

// PropertySnapshot is one push of the property collection. Records are
// ordered by publication date descending (the store's server-side
// sort). A non-nil Err marks a subscription failure; the previous
// records remain the last known good state.
type PropertySnapshot struct {
	Records []models.Property
	Err     error
}

// ReviewSnapshot is one push of the review collection, ordered by
// creation date descending.
type ReviewSnapshot struct {
	Reviews []models.Review
	Err     error
}

// Subscription is a handle on an active stream. Unsubscribe releases
// it; no callback fires after Unsubscribe returns the stream to the
// store.
type Subscription interface {
	Unsubscribe()
}

// Store delivers collection snapshots. Within one subscription,
// snapshots arrive in emission order; no ordering holds across
// subscriptions.
type Store interface {
	SubscribeProperties(ctx context.Context, fn func(PropertySnapshot)) (Subscription, error)
	SubscribeReviews(ctx context.Context, fn func(ReviewSnapshot)) (Subscription, error)
}
