package commands

import (
	"bytes"
	"io"
	"os"

	serrors "git.home.luguber.info/inful/prscrub/internal/errors"
	"git.home.luguber.info/inful/prscrub/internal/logfields"
	"git.home.luguber.info/inful/prscrub/internal/scrub"
)

// ScrubCmd implements the 'scrub' command.
type ScrubCmd struct {
	Write        bool     `short:"w" help:"Rewrite files in place instead of printing to stdout"`
	RedirectHost string   `help:"Override the configured redirect host for issue/PR links"`
	Paths        []string `arg:"" optional:"" help:"Markdown files to scrub. Reads stdin when omitted."`
}

// Run executes the scrub command.
func (sc *ScrubCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	host := cfg.RedirectHost
	if sc.RedirectHost != "" {
		host = sc.RedirectHost
	}
	scrubber := scrub.New(scrub.Options{RedirectHost: host})

	if len(sc.Paths) == 0 {
		if sc.Write {
			return serrors.New(serrors.CategoryValidation, serrors.SeverityError, "--write requires file arguments")
		}
		return scrubStream(scrubber, os.Stdin, os.Stdout)
	}

	for _, path := range sc.Paths {
		if err := sc.scrubPath(g, scrubber, path); err != nil {
			return err
		}
	}
	return nil
}

func (sc *ScrubCmd) scrubPath(g *Global, scrubber *scrub.Scrubber, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return serrors.Wrap(err, serrors.CategoryFileSystem, serrors.SeverityError, "failed to read file").
			WithContext("path", path)
	}
	res, err := scrubber.Scrub(source)
	if err != nil {
		return err
	}

	g.Logger.Debug("Scrubbed document",
		logfields.File(path),
		logfields.MentionsLinked(res.MentionsLinked),
		logfields.ReferencesShort(res.ReferencesShortened))

	if !sc.Write {
		_, err = os.Stdout.Write(res.Output)
		return err
	}
	if bytes.Equal(res.Output, source) {
		return nil
	}
	if err := os.WriteFile(path, res.Output, 0o644); err != nil {
		return serrors.Wrap(err, serrors.CategoryFileSystem, serrors.SeverityError, "failed to write file").
			WithContext("path", path)
	}
	return nil
}

func scrubStream(scrubber *scrub.Scrubber, in io.Reader, out io.Writer) error {
	source, err := io.ReadAll(in)
	if err != nil {
		return serrors.Wrap(err, serrors.CategoryFileSystem, serrors.SeverityError, "failed to read stdin")
	}
	res, err := scrubber.Scrub(source)
	if err != nil {
		return err
	}
	_, err = out.Write(res.Output)
	return err
}
