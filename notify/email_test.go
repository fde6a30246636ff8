// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package notify

import (
	"strings"
	"testing"

	"github.com/go-core-stack/alerter/alert"
	"github.com/go-core-stack/alerter/errors"
)

func Test_ChannelConfigValidation(t *testing.T) {
	t.Run("test_valid_config", func(t *testing.T) {
		c, err := New(Config{
			Host:      "smtp.example.com",
			Sender:    "alerter@example.com",
			Password:  "secret",
			Receivers: []string{"oncall@example.com"},
		})
		if err != nil {
			t.Fatalf("expected config to validate, got %v", err)
		}
		if c.endpoint != "smtp.example.com:587" {
			t.Errorf("expected default port 587 in endpoint, got %s", c.endpoint)
		}
	})

	t.Run("test_missing_sender", func(t *testing.T) {
		_, err := New(Config{
			Host:      "smtp.example.com",
			Password:  "secret",
			Receivers: []string{"oncall@example.com"},
		})
		if errors.GetErrCode(err) != errors.MissingConfigKey {
			t.Errorf("expected missing config key error, got %v", err)
		}
	})

	t.Run("test_blank_password", func(t *testing.T) {
		_, err := New(Config{
			Host:      "smtp.example.com",
			Sender:    "alerter@example.com",
			Receivers: []string{"oncall@example.com"},
		})
		if errors.GetErrCode(err) != errors.BlankCredential {
			t.Errorf("expected blank credential error, got %v", err)
		}
	})

	t.Run("test_bad_receiver", func(t *testing.T) {
		_, err := New(Config{
			Host:      "smtp.example.com",
			Sender:    "alerter@example.com",
			Password:  "secret",
			Receivers: []string{"not-an-email"},
		})
		if !errors.IsInvalidArgument(err) {
			t.Errorf("expected invalid argument error, got %v", err)
		}
	})
}

func Test_AlertRendering(t *testing.T) {
	a := alert.New(errors.ResourceLocked, "resource locked", alert.SeverityCritical, "system-monitor-1")
	a.ParentID = "chain-1"

	subject := renderSubject(a)
	if subject != "[CRITICAL] alert 434: resource locked" {
		t.Errorf("unexpected subject %q", subject)
	}

	body := renderBody(a)
	for _, want := range []string{"Code: 434", "Message: resource locked", "Origin: system-monitor-1", "Parent: chain-1"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q, got:\n%s", want, body)
		}
	}
}
