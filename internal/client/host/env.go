package host

import (
	"log/slog"
	"sync"
)

// EnvConfig describes the launch handoff from the embedding container
type EnvConfig struct {
	// InitData — подписанный хостом payload (Telegram initData)
	InitData string

	// LaunchURL — URL, с которым было открыто приложение
	LaunchURL string

	// Hosted marks the container as attached even when InitData is still
	// empty (the host may supply it later)
	Hosted bool

	// OnAlert receives alert messages for the host dialog
	OnAlert func(message string)

	// OnClose is invoked when the host is asked to close the app
	OnClose func()
}

// Env is the Bridge implementation backed by explicit launch parameters.
// The container itself lives outside the process, so its commands are
// delivered through the configured callbacks.
type Env struct {
	mu        sync.Mutex
	initData  string
	launchURL string
	hosted    bool
	onAlert   func(string)
	onClose   func()
}

// Compile-time check that Env implements Bridge
var _ Bridge = (*Env)(nil)

// NewEnv creates a Bridge from the given launch handoff
func NewEnv(cfg EnvConfig) *Env {
	return &Env{
		initData:  cfg.InitData,
		launchURL: cfg.LaunchURL,
		hosted:    cfg.Hosted || cfg.InitData != "",
		onAlert:   cfg.OnAlert,
		onClose:   cfg.OnClose,
	}
}

// Available reports whether the host container is attached
func (e *Env) Available() bool {
	return e.hosted
}

// LocalDevelopment reports whether the launch URL points at a loopback host
func (e *Env) LocalDevelopment() bool {
	return loopbackURL(e.LaunchURL())
}

// InitData returns the host-signed launch payload, empty if absent
func (e *Env) InitData() string {
	return e.initData
}

// LaunchURL returns the current launch URL
func (e *Env) LaunchURL() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.launchURL
}

// ReplaceLaunchURL replaces the visible launch URL in place
func (e *Env) ReplaceLaunchURL(raw string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.launchURL = raw
}

// Ready signals the host that the app finished loading
func (e *Env) Ready() {
	if !e.hosted {
		slog.Debug("host unavailable, skipping ready")
		return
	}
	// Контейнер снаружи процесса; сигнал носит информационный характер
	slog.Debug("host ready")
}

// Expand asks the host to expand the viewport
func (e *Env) Expand() {
	if !e.hosted {
		slog.Debug("host unavailable, skipping expand")
		return
	}
	slog.Debug("host expand")
}

// ShowAlert asks the host to display an alert dialog
func (e *Env) ShowAlert(message string) {
	if !e.hosted || e.onAlert == nil {
		slog.Debug("host unavailable, alert dropped", "message", message)
		return
	}
	e.onAlert(message)
}

// Close asks the host to close the app
func (e *Env) Close() {
	if !e.hosted || e.onClose == nil {
		slog.Debug("host unavailable, skipping close")
		return
	}
	e.onClose()
}
