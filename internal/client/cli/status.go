package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/webcards/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	// Проверяем наличие валидной сессии; просроченная будет удалена
	valid, err := c.sessions.IsValid(ctx)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}

	if !valid {
		c.io.Println("Status: no valid session")
		c.io.Println()
		c.io.Println("Open the card from the Telegram bot to authenticate.")
		return nil
	}

	sess, err := c.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.io.Println("Status: no valid session")
			return nil
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	c.io.Println("Status: authenticated")
	c.io.Printf("User:   %s", sess.User.FirstName)
	if sess.User.Username != "" {
		c.io.Printf(" (@%s)", sess.User.Username)
	}
	c.io.Println()
	if sess.CardID != "" {
		c.io.Printf("Card:   %s\n", sess.CardID)
	}

	if sess.HasExpiry() {
		c.io.Printf("Expires: %s\n", sess.ExpiresAt.Format(time.RFC3339))
		c.io.Printf("Time remaining: %s\n", time.Until(sess.ExpiresAt).Round(time.Second))
	} else {
		c.io.Println("Expires: server-side revocation only")
	}

	deviceID, err := c.sessions.DeviceID(ctx)
	if err == nil {
		c.io.Printf("Device: %s\n", deviceID)
	}

	return nil
}
