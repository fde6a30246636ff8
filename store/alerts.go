// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/go-core-stack/alerter/alert"
	"github.com/go-core-stack/alerter/db"
	"github.com/go-core-stack/alerter/errors"
)

const (
	// collection name for the alert table
	alertCollection = "alerts-table"
)

// AlertTable persists raised alerts keyed by their unique ids
type AlertTable struct {
	col db.StoreCollection
}

// Initialize sets up the table with collection from the provided store.
// Must be called before any other operation.
func (t *AlertTable) Initialize(store db.Store) error {
	if t.col != nil {
		return errors.Wrapf(errors.AlreadyExists, "Alert table is already initialized")
	}
	t.col = store.GetCollection(alertCollection)
	return nil
}

// Insert records a newly raised alert under the given key
func (t *AlertTable) Insert(ctx context.Context, key *alert.Key, entry *alert.Alert) error {
	if t.col == nil {
		return errors.Wrapf(errors.InvalidArgument, "Alert table not initialized")
	}
	return t.col.InsertOne(ctx, key, entry)
}

// Find retrieves an alert by key
func (t *AlertTable) Find(ctx context.Context, key *alert.Key) (*alert.Alert, error) {
	if t.col == nil {
		return nil, errors.Wrapf(errors.InvalidArgument, "Alert table not initialized")
	}
	var data alert.Alert
	err := t.col.FindOne(ctx, key, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// FindMany retrieves alerts matching the provided filter, with
// optional limit, offset and sort options
func (t *AlertTable) FindMany(ctx context.Context, filter any, opts ...FindOpt) ([]*alert.Alert, error) {
	if t.col == nil {
		return nil, errors.Wrapf(errors.InvalidArgument, "Alert table not initialized")
	}
	var data []*alert.Alert
	err := t.col.FindMany(ctx, filter, &data, buildFindOptions(opts...))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Count returns the number of alerts matching the provided filter
func (t *AlertTable) Count(ctx context.Context, filter any) (int64, error) {
	if t.col == nil {
		return 0, errors.Wrapf(errors.InvalidArgument, "Alert table not initialized")
	}
	return t.col.Count(ctx, filter)
}

// Resolve marks the alert with given key as resolved
func (t *AlertTable) Resolve(ctx context.Context, key *alert.Key) error {
	if t.col == nil {
		return errors.Wrapf(errors.InvalidArgument, "Alert table not initialized")
	}
	entry, err := t.Find(ctx, key)
	if err != nil {
		return err
	}
	entry.Resolved = true
	return t.col.UpdateOne(ctx, key, entry, false)
}

// DeleteKey removes an alert by key from the table
func (t *AlertTable) DeleteKey(ctx context.Context, key *alert.Key) error {
	if t.col == nil {
		return errors.Wrapf(errors.InvalidArgument, "Alert table not initialized")
	}
	return t.col.DeleteOne(ctx, key)
}

// PurgeResolved removes all alerts already marked resolved,
// returning the number of entries removed
func (t *AlertTable) PurgeResolved(ctx context.Context) (int64, error) {
	if t.col == nil {
		return 0, errors.Wrapf(errors.InvalidArgument, "Alert table not initialized")
	}
	filter := bson.D{{Key: "resolved", Value: true}}
	return t.col.DeleteMany(ctx, filter)
}
