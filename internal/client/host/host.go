package host

// Bridge abstracts the Telegram Mini App container embedding the
// application. All command methods are best effort: with no host attached
// they log and return instead of failing the caller.
type Bridge interface {
	// Available reports whether the app runs inside the expected host container
	Available() bool

	// LocalDevelopment reports whether the page is served from a loopback
	// address. This is the development escape hatch that disables gating;
	// it is independent of Available.
	LocalDevelopment() bool

	// InitData returns the host-signed launch payload, empty if the host
	// is unavailable or has not supplied it yet
	InitData() string

	// LaunchURL returns the current launch URL
	LaunchURL() string

	// ReplaceLaunchURL replaces the visible launch URL in place
	ReplaceLaunchURL(raw string)

	// One-way commands to the host container
	Ready()
	Expand()
	ShowAlert(message string)
	Close()
}

// Noop is a Bridge with no host attached. Every command is a no-op and
// every query reports absence; used when running outside any container.
type Noop struct{}

// Compile-time check that Noop implements Bridge
var _ Bridge = (*Noop)(nil)

func (Noop) Available() bool         { return false }
func (Noop) LocalDevelopment() bool  { return false }
func (Noop) InitData() string        { return "" }
func (Noop) LaunchURL() string       { return "" }
func (Noop) ReplaceLaunchURL(string) {}
func (Noop) Ready()                  {}
func (Noop) Expand()                 {}
func (Noop) ShowAlert(string)        {}
func (Noop) Close()                  {}
