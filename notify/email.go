// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// This is a wrapper over and above the standard net/smtp package
// providing an email delivery channel for raised alerts

package notify

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/go-core-stack/alerter/alert"
	"github.com/go-core-stack/alerter/errors"
	"github.com/go-core-stack/alerter/utils"
)

// Base Configuration with which an email channel will be created.
type Config struct {
	// smtp server host which is providing the mail services
	// typically gmail smtp would be "smtp.gmail.com"
	Host string

	// port over which the smtp service is provided
	Port string

	// Sender email address / username for authentication
	Sender string

	// Password for authenticating the sender with smtp server
	Password string

	// List of receivers every alert is delivered to
	Receivers []string
}

func (c *Config) validate() error {
	if c.Host == "" {
		return errors.Wrap(errors.MissingConfigKey, "smtp host is not configured")
	}
	if c.Port == "" {
		c.Port = "587"
	}
	if c.Sender == "" {
		return errors.Wrap(errors.MissingConfigKey, "smtp sender is not configured")
	}
	if c.Password == "" {
		return errors.Wrap(errors.BlankCredential, "smtp password configured as an empty string")
	}
	if len(c.Receivers) == 0 {
		return errors.Wrap(errors.MissingConfigKey, "no alert receivers configured")
	}
	for _, r := range c.Receivers {
		if !utils.IsValidEmail(r) {
			return errors.Wrapf(errors.InvalidArgument, "invalid receiver email address %q", r)
		}
	}
	return nil
}

// Email channel handle, used for delivering alerts over smtp
type Client struct {
	// channel config object
	config Config

	// smtp endpoint
	endpoint string
}

// Create a new email channel handle for the given config
func New(config Config) (*Client, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	// create smtp endpoint with provided host and port
	return &Client{
		config:   config,
		endpoint: fmt.Sprintf("%s:%s", config.Host, config.Port),
	}, nil
}

// renderSubject produces the mail subject line for an alert
func renderSubject(a *alert.Alert) string {
	return fmt.Sprintf("[%s] alert %d: %s", a.Severity, a.Code, a.Message)
}

// renderBody produces the mail body for an alert
func renderBody(a *alert.Alert) string {
	body := fmt.Sprintf("Code: %d\nMessage: %s\nSeverity: %s\n", a.Code, a.Message, a.Severity)
	if a.Origin != "" {
		body += fmt.Sprintf("Origin: %s\n", a.Origin)
	}
	if a.ParentID != "" {
		body += fmt.Sprintf("Parent: %s\n", a.ParentID)
	}
	body += fmt.Sprintf("Raised: %s\n", time.Unix(a.Timestamp, 0).UTC().Format(time.RFC3339))
	return body
}

// Send delivers the given alert to all configured receivers
func (c *Client) send(a *alert.Alert) error {
	// Authentication.
	auth := smtp.PlainAuth("", c.config.Sender, c.config.Password, c.config.Host)

	message := fmt.Appendf(nil, "Subject: %s\n\n%s", renderSubject(a), renderBody(a))
	// Sending email.
	err := smtp.SendMail(c.endpoint, auth, c.config.Sender, c.config.Receivers, message)
	if err != nil {
		return errors.Wrapf(errors.MessageNotDelivered, "failed to send alert mail: %s", err)
	}

	return nil
}
