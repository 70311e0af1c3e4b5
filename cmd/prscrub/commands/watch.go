package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/prscrub/internal/scrub"
	"git.home.luguber.info/inful/prscrub/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Dir        string `arg:"" help:"Directory to watch for markdown changes"`
	DebounceMS int    `help:"Quiet period in milliseconds before a changed file is scrubbed (overrides config)"`
}

// Run watches the directory until SIGINT/SIGTERM.
func (wc *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	if wc.DebounceMS > 0 {
		debounce = time.Duration(wc.DebounceMS) * time.Millisecond
	}

	logger := cfg.Logging.BuildLogger(os.Stderr)
	scrubber := scrub.New(scrub.Options{RedirectHost: cfg.RedirectHost})

	w, err := watch.New(wc.Dir, scrubber, debounce, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}
