// Package scrub neutralizes accidental GitHub notifications in
// machine-generated markdown before it is published: plain @user mentions
// become profile links (which do not ping anyone) and verbose issue/PR URLs
// collapse to the owner/repo#number form, optionally pointed at a redirect
// host.
package scrub

import (
	"bytes"
	"time"

	serrors "git.home.luguber.info/inful/prscrub/internal/errors"
	"git.home.luguber.info/inful/prscrub/internal/markdown"
	"git.home.luguber.info/inful/prscrub/internal/metrics"
)

// Options configures a Scrubber.
type Options struct {
	// RedirectHost replaces github.com in rewritten issue/PR link targets.
	// Empty means targets keep their original host.
	RedirectHost string

	// Metrics receives per-document counters. Nil disables recording.
	Metrics metrics.Recorder
}

// Scrubber applies both sanitizer passes to markdown documents. It is
// immutable after construction and safe for concurrent use: each call
// operates on its own tree.
type Scrubber struct {
	redirectHost string
	rec          metrics.Recorder
}

// New creates a Scrubber from options.
func New(opts Options) *Scrubber {
	rec := opts.Metrics
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Scrubber{redirectHost: opts.RedirectHost, rec: rec}
}

// Result describes one scrubbed document.
type Result struct {
	Output              []byte
	MentionsLinked      int
	MentionsKept        int
	ReferencesShortened int
}

// Scrub parses the document, runs the mention pass then the link pass over
// the tree, and renders the result. The pass order matters only in that
// mention-generated profile links never match the issue/PR shape, so running
// the link pass second cannot touch them.
func (s *Scrubber) Scrub(source []byte) (*Result, error) {
	start := time.Now()

	root, err := markdown.Parse(source, markdown.Options{})
	if err != nil {
		s.rec.IncDocuments(metrics.OutcomeError)
		return nil, serrors.Wrap(err, serrors.CategoryMarkdown, serrors.SeverityError, "failed to parse markdown")
	}

	res := &Result{}
	res.MentionsLinked, res.MentionsKept = LinkMentions(root, source)
	res.ReferencesShortened = ShortenReferences(root, source, s.redirectHost)

	var buf bytes.Buffer
	if err := markdown.Render(&buf, source, root); err != nil {
		s.rec.IncDocuments(metrics.OutcomeError)
		return nil, serrors.Wrap(err, serrors.CategoryMarkdown, serrors.SeverityError, "failed to render markdown")
	}
	res.Output = buf.Bytes()

	s.rec.ObserveScrubDuration(time.Since(start))
	s.rec.IncDocuments(metrics.OutcomeSuccess)
	s.rec.AddMentionsLinked(res.MentionsLinked)
	s.rec.AddMentionsKept(res.MentionsKept)
	s.rec.AddReferencesShortened(res.ReferencesShortened)
	return res, nil
}
