// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package router

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	"github.com/go-core-stack/alerter/alert"
	"github.com/go-core-stack/alerter/errors"
	"github.com/go-core-stack/alerter/mq"
)

// AlertStore is the slice of the alert table the store sink needs
type AlertStore interface {
	Insert(ctx context.Context, key *alert.Key, entry *alert.Alert) error
}

// StoreSink persists raised alerts in the alert table
type StoreSink struct {
	Table AlertStore
}

func (s *StoreSink) Raise(ctx context.Context, key *alert.Key, a *alert.Alert) error {
	err := s.Table.Insert(ctx, key, a)
	if errors.IsAlreadyExists(err) {
		// the alert was already persisted under this key on an
		// earlier attempt, nothing more to do here
		return nil
	}
	return err
}

// Forwarded is the envelope under which alerts are republished,
// the id matches the key of the persisted alert document
type Forwarded struct {
	ID    string       `json:"id"`
	Alert *alert.Alert `json:"alert"`
}

// PublishSink forwards raised alerts over the alert exchange for
// downstream consumers
type PublishSink struct {
	Client *mq.Client

	// routing key under which alerts are forwarded
	RoutingKey string
}

func (s *PublishSink) Raise(ctx context.Context, key *alert.Key, a *alert.Alert) error {
	body, err := jsoniter.Marshal(&Forwarded{
		ID:    key.ID,
		Alert: a,
	})
	if err != nil {
		return errors.Wrapf(errors.Internal, "failed to encode alert: %s", err)
	}
	return s.Client.Publish(ctx, s.RoutingKey, body)
}
