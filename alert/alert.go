// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package alert

import (
	"time"

	"github.com/google/uuid"

	"github.com/go-core-stack/alerter/errors"
)

// Severity of an alert as classified by the router
type Severity string

// alert severities
const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
	SeverityError    Severity = "ERROR"
)

// Key identifying an alert entry in the store
type Key struct {
	ID string `bson:"id,omitempty" json:"id"`
}

// Alert is a single reportable failure instance, carrying one
// registry code along with the context under which it was raised
type Alert struct {
	Code      errors.ErrCode `bson:"code" json:"code"`
	Message   string         `bson:"message" json:"message"`
	Severity  Severity       `bson:"severity" json:"severity"`
	Origin    string         `bson:"origin,omitempty" json:"origin,omitempty"`
	ParentID  string         `bson:"parentId,omitempty" json:"parent_id,omitempty"`
	Timestamp int64          `bson:"timestamp" json:"timestamp"`
	Resolved  bool           `bson:"resolved,omitempty" json:"resolved,omitempty"`
}

// New creates an alert for the given code and message, stamping
// the raise time, no validation is performed on the pair as the
// registry contract allows any combination
func New(code errors.ErrCode, msg string, severity Severity, origin string) *Alert {
	return &Alert{
		Code:      code,
		Message:   msg,
		Severity:  severity,
		Origin:    origin,
		Timestamp: time.Now().Unix(),
	}
}

// NewKey allocates a unique key for storing an alert
func NewKey() *Key {
	return &Key{
		ID: uuid.New().String(),
	}
}
