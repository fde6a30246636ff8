// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package notify

import (
	"context"

	"github.com/go-core-stack/alerter/alert"
)

// Raise delivers one alert over the email channel, satisfying the
// router sink contract. The key is unused, email delivery has no
// dedup handle
func (c *Client) Raise(ctx context.Context, key *alert.Key, a *alert.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.send(a)
}
