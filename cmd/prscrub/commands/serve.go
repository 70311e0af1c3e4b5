package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/prscrub/internal/metrics"
	"git.home.luguber.info/inful/prscrub/internal/scrub"
	"git.home.luguber.info/inful/prscrub/internal/server"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address (overrides config)"`
}

// Run starts the HTTP service and blocks until SIGINT/SIGTERM.
func (sc *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if sc.Addr != "" {
		cfg.Server.Addr = sc.Addr
	}

	logger := cfg.Logging.BuildLogger(os.Stderr)

	reg := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)
	scrubber := scrub.New(scrub.Options{RedirectHost: cfg.RedirectHost, Metrics: recorder})

	srv := server.New(cfg.Server, scrubber, reg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
