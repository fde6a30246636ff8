// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Initial reference and motivation taken from
// https://gitlab.com/project-emco/core/emco-base/-/blob/main/src/orchestrator/pkg/infra/db

package db

import (
	"context"
)

// Store scopes a set of collections, typically mapping to a
// database construct of the backing server
type Store interface {
	// Get the collection handle for given collection name
	GetCollection(name string) StoreCollection

	// Name of the data store
	Name() string
}

// StoreCollection provides access to entries of a single collection
type StoreCollection interface {
	// inserts one entry with given key and data to the collection
	InsertOne(ctx context.Context, key any, data any) error

	// updates one entry with given key, inserting it when upsert is set
	UpdateOne(ctx context.Context, key any, data any, upsert bool) error

	// finds one entry for the given key, decoding it into data
	FindOne(ctx context.Context, key any, data any) error

	// finds multiple entries matching the given filter, decoding
	// them into the list object passed as data
	FindMany(ctx context.Context, filter any, data any, opts ...any) error

	// returns count of entries matching the provided filter
	Count(ctx context.Context, filter any) (int64, error)

	// removes one entry from the collection matching the given key
	DeleteOne(ctx context.Context, key any) error

	// removes all entries matching the delete criteria, returning
	// the number of entries deleted
	DeleteMany(ctx context.Context, filter any) (int64, error)
}

// StoreClient is the handle for a connected data store server
type StoreClient interface {
	// Get the Data Store interface given the client interface
	GetDataStore(dbName string) Store

	// Get the collection directly given database and collection name
	GetCollection(dbName, col string) StoreCollection

	// Health Check, if the Store is connectable and healthy
	// returns the status of health of the server by means of
	// error if error is nil the health of the DB store can be
	// considered healthy
	HealthCheck(ctx context.Context) error

	// Close the connection with the data store server
	Close(ctx context.Context) error
}
