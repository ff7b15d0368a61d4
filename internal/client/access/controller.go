package access

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/webcards/internal/client/gateway"
	"github.com/iudanet/webcards/internal/client/host"
	"github.com/iudanet/webcards/internal/models"
)

// Status represents the gate outcome exposed to the application shell
type Status int

const (
	StatusInitializing Status = iota
	StatusBypassed
	StatusAuthenticated
	StatusDenied
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusBypassed:
		return "bypassed"
	case StatusAuthenticated:
		return "authenticated"
	case StatusDenied:
		return "denied"
	case StatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// MsgSessionExpired is shown when the watcher detects expiry mid-session
const MsgSessionExpired = "Sesión expirada. Por favor, inicia sesión nuevamente."

// State is the read-only outcome of the gate. The shell renders purely
// from it and never calls back into the controller except Close.
type State struct {
	Status  Status
	Reason  string // user-facing message for Denied/Expired
	Session *models.Session
}

// Gateway performs the one-shot authentication exchange
type Gateway interface {
	Authenticate(ctx context.Context, launch host.LaunchContext) (*models.Session, error)
}

// SessionStore is the session service surface the controller depends on
type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Load(ctx context.Context) (*models.Session, error)
	IsValid(ctx context.Context) (bool, error)
	Clear(ctx context.Context) error
}

// Config tunes the controller timings and the fallback card identity
type Config struct {
	// DefaultCardID is used when the launch URL carries no card_id
	DefaultCardID string

	// CloseDelay is how long a denied screen stays up before the host is
	// asked to close the app
	CloseDelay time.Duration

	// WatchInterval is the period of the post-authentication expiry check
	WatchInterval time.Duration
}

const (
	defaultCloseDelay    = 3 * time.Second
	defaultWatchInterval = time.Minute
)

// Controller orchestrates the gate: bypass check, cached session, network
// exchange — strictly in that order, at most one producing the final state
// per load. Dependencies are injected so the flow is testable without a
// real host or backend.
type Controller struct {
	host    host.Bridge
	gateway Gateway
	store   SessionStore
	cfg     Config

	mu         sync.Mutex
	state      State
	watcher    *Watcher
	closeTimer *time.Timer
}

// NewController creates a controller over the injected collaborators
func NewController(b host.Bridge, gw Gateway, store SessionStore, cfg Config) *Controller {
	if cfg.CloseDelay <= 0 {
		cfg.CloseDelay = defaultCloseDelay
	}
	if cfg.WatchInterval <= 0 {
		cfg.WatchInterval = defaultWatchInterval
	}
	return &Controller{
		host:    b,
		gateway: gw,
		store:   store,
		cfg:     cfg,
		state:   State{Status: StatusInitializing},
	}
}

// State returns a copy of the current gate state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Run executes the gate once at application start and returns the
// resulting state. Every failure terminates here as StatusDenied; nothing
// below this layer reaches the shell as a fault.
func (c *Controller) Run(ctx context.Context) State {
	c.host.Ready()
	c.host.Expand()

	// 1. Локальная разработка всегда побеждает: без гейта и без артефакта
	if c.host.LocalDevelopment() {
		slog.Info("loopback host detected, gating disabled")
		return c.setState(State{Status: StatusBypassed})
	}

	// 2. Валидная закешированная сессия избавляет от сетевого обмена
	valid, err := c.store.IsValid(ctx)
	if err != nil {
		// Сбой хранилища не фатален: идем на сетевую аутентификацию
		slog.Warn("session store check failed", "error", err)
	}
	if valid {
		session, err := c.store.Load(ctx)
		if err != nil {
			slog.Warn("failed to load cached session", "error", err)
		} else {
			slog.Debug("using cached session", "user", session.User.FirstName)
			c.startWatcher()
			return c.setState(State{Status: StatusAuthenticated, Session: session})
		}
	}

	// 3. Единственный сетевой обмен за загрузку
	launch := host.ResolveLaunch(c.host, c.cfg.DefaultCardID)
	session, authErr := c.gateway.Authenticate(ctx, launch)

	// Одноразовый токен потрачен: убираем его из видимого URL при любом
	// исходе обмена, чтобы исключить replay через историю браузера
	c.host.ReplaceLaunchURL(host.StripCredentials(c.host.LaunchURL()))

	if authErr != nil {
		return c.deny(authErr)
	}

	if err := c.store.Save(ctx, session); err != nil {
		// Сессия валидна для этой загрузки даже без персистенции
		slog.Error("failed to persist session", "error", err)
	}

	slog.Info("authenticated", "user", session.User.FirstName)
	c.startWatcher()
	return c.setState(State{Status: StatusAuthenticated, Session: session})
}

// Close tears the controller down: the expiry watcher and any pending
// host-close are released. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	watcher := c.watcher
	closeTimer := c.closeTimer
	c.watcher = nil
	c.closeTimer = nil
	c.mu.Unlock()

	if watcher != nil {
		watcher.Stop()
	}
	if closeTimer != nil {
		closeTimer.Stop()
	}
}

// deny maps an authentication error to the denied state, shows the alert
// and schedules the host close after the configured delay
func (c *Controller) deny(err error) State {
	var message string

	var deniedErr *gateway.DeniedError
	switch {
	case errors.As(err, &deniedErr):
		slog.Warn("authentication denied", "reason", deniedErr.Code)
		message = deniedErr.Message
	case errors.Is(err, gateway.ErrConnection):
		slog.Error("authentication exchange failed", "error", err)
		message = gateway.MsgConnection
	default:
		slog.Error("authentication failed", "error", err)
		message = gateway.UserMessage(err.Error())
	}

	c.host.ShowAlert(message)
	c.scheduleClose()

	return c.setState(State{Status: StatusDenied, Reason: message})
}

// expire handles the watcher's first negative validity result
func (c *Controller) expire() {
	slog.Info("session expired, forcing logout")

	if err := c.store.Clear(context.Background()); err != nil {
		slog.Error("failed to clear expired session", "error", err)
	}

	c.setState(State{Status: StatusExpired, Reason: MsgSessionExpired})

	c.host.ShowAlert(MsgSessionExpired)
	if c.host.Available() {
		c.host.Close()
	}
}

// startWatcher begins the recurring expiry check for this session
func (c *Controller) startWatcher() {
	watcher, err := StartWatcher(c.store, c.cfg.WatchInterval, c.expire)
	if err != nil {
		slog.Error("failed to start expiration watcher", "error", err)
		return
	}

	c.mu.Lock()
	c.watcher = watcher
	c.mu.Unlock()
}

// scheduleClose asks the host to close the app after the denial screen
// had its few seconds on display
func (c *Controller) scheduleClose() {
	timer := time.AfterFunc(c.cfg.CloseDelay, func() {
		if c.host.Available() {
			c.host.Close()
		}
	})

	c.mu.Lock()
	c.closeTimer = timer
	c.mu.Unlock()
}

// setState publishes the new gate state
func (c *Controller) setState(state State) State {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
	return state
}
