package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iudanet/webcards/internal/client/access"
	"github.com/iudanet/webcards/internal/client/host"
)

// runGate executes the access gate once and, when the outcome is
// authenticated, keeps the process alive under the expiry watcher until
// the host closes the app or the context is cancelled.
func (c *Cli) runGate(ctx context.Context) error {
	c.io.Println("=== Web Card Access Gate ===")

	// Канал closed имитирует закрытие приложения контейнером
	closed := make(chan struct{})
	var closeOnce sync.Once

	bridge := host.NewEnv(host.EnvConfig{
		InitData:  c.initData,
		LaunchURL: c.launchURL,
		OnAlert: func(message string) {
			c.io.Printf("[host alert] %s\n", message)
		},
		OnClose: func() {
			closeOnce.Do(func() { close(closed) })
		},
	})

	controller := access.NewController(bridge, c.gateway, c.sessions, access.Config{
		DefaultCardID: c.cfg.CardID,
		CloseDelay:    c.cfg.CloseDelay(),
		WatchInterval: c.cfg.WatchInterval(),
	})
	defer controller.Close()

	state := controller.Run(ctx)

	switch state.Status {
	case access.StatusBypassed:
		c.io.Println("Access: bypassed (local development)")
		return nil

	case access.StatusAuthenticated:
		c.io.Printf("Access: granted to %s\n", state.Session.User.FirstName)
		if state.Session.CardID != "" {
			c.io.Printf("Card:   %s\n", state.Session.CardID)
		}
		if state.Session.HasExpiry() {
			c.io.Printf("Valid until: %s\n", state.Session.ExpiresAt.Format(time.RFC3339))
		}

		// Держим процесс, пока сессию сторожит watcher
		select {
		case <-closed:
			final := controller.State()
			if final.Status == access.StatusExpired {
				return fmt.Errorf("session expired")
			}
			return nil
		case <-ctx.Done():
			return nil
		}

	case access.StatusDenied:
		// Даем хосту время показать экран отказа и закрыться
		select {
		case <-closed:
		case <-ctx.Done():
		case <-time.After(c.cfg.CloseDelay() + 5*time.Second):
		}
		return fmt.Errorf("access denied: %s", state.Reason)

	default:
		return fmt.Errorf("unexpected gate state: %s", state.Status)
	}
}
