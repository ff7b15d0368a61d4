package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/webcards/internal/client/config"
	"github.com/iudanet/webcards/internal/client/gateway"
	"github.com/iudanet/webcards/internal/client/iocli"
	"github.com/iudanet/webcards/internal/client/session"
)

// Cli binds the gate services to the command surface
type Cli struct {
	io       iocli.IO
	sessions *session.Service
	gateway  *gateway.Client
	cfg      config.Config

	// Launch handoff из контейнера: URL запуска и подписанный payload
	launchURL string
	initData  string
}

// New создает CLI поверх сконфигурированных сервисов
func New(
	io iocli.IO,
	sessions *session.Service,
	gw *gateway.Client,
	cfg config.Config,
	launchURL, initData string,
) *Cli {
	return &Cli{
		io:        io,
		sessions:  sessions,
		gateway:   gw,
		cfg:       cfg,
		launchURL: launchURL,
		initData:  initData,
	}
}

// Run выполняет команду
func (c *Cli) Run(ctx context.Context, command string) error {
	switch command {
	case "gate":
		return c.runGate(ctx)
	case "status":
		return c.runStatus(ctx)
	case "logout":
		return c.runLogout(ctx)
	default:
		PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// PrintUsage prints the command summary
func PrintUsage() {
	fmt.Println(`Usage: webcard [flags] <command>

Commands:
  gate    Run the access gate once and keep the session watched
  status  Show the stored session state
  logout  Clear the stored session

Flags:
  -config string      Path to TOML config file
  -server string      Backend base URL override
  -db string          Path to local database override
  -launch-url string  Launch URL handed over by the container
  -version            Show version information

Environment:
  WEBCARD_INIT_DATA   Host-signed launch payload (Telegram initData)`)
}
