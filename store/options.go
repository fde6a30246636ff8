// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SortDirection for find queries
type SortDirection int

const (
	SortAscending  SortDirection = 1
	SortDescending SortDirection = -1
)

// SortOption describes ordering on a single field
type SortOption struct {
	Field     string
	Direction SortDirection
}

// FindOpt mutates the find options built for a query
type FindOpt func(*options.FindOptions)

// WithLimit caps the number of entries returned
func WithLimit(limit int64) FindOpt {
	return func(o *options.FindOptions) {
		o.SetLimit(limit)
	}
}

// WithOffset skips the given number of entries, enabling pagination
func WithOffset(offset int64) FindOpt {
	return func(o *options.FindOptions) {
		o.SetSkip(offset)
	}
}

// WithSort orders results by the given fields, applied in order
func WithSort(sorts ...SortOption) FindOpt {
	return func(o *options.FindOptions) {
		doc := bson.D{}
		for _, s := range sorts {
			doc = append(doc, bson.E{Key: s.Field, Value: int(s.Direction)})
		}
		o.SetSort(doc)
	}
}

// buildFindOptions collapses the provided opts into a single
// find options object for the db layer
func buildFindOptions(opts ...FindOpt) *options.FindOptions {
	o := options.Find()
	for _, opt := range opts {
		opt(o)
	}
	return o
}
