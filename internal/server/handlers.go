package server

import (
	"io"
	"net/http"

	serrors "git.home.luguber.info/inful/prscrub/internal/errors"
	"git.home.luguber.info/inful/prscrub/internal/logfields"
)

// handleScrub accepts a markdown document in the request body and responds
// with the scrubbed markup.
func (s *Server) handleScrub(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.adapter.WriteErrorResponse(w, serrors.New(serrors.CategoryValidation, serrors.SeverityError, "method not allowed"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxBodyBytes+1))
	if err != nil {
		s.adapter.WriteErrorResponse(w, serrors.Wrap(err, serrors.CategoryValidation, serrors.SeverityError, "failed to read request body"))
		return
	}
	if int64(len(body)) > s.maxBodyBytes {
		s.adapter.WriteErrorResponse(w, serrors.New(serrors.CategoryValidation, serrors.SeverityError, "request body too large").
			WithContext("max_bytes", s.maxBodyBytes))
		return
	}

	res, err := s.scrubber.Scrub(body)
	if err != nil {
		s.adapter.WriteErrorResponse(w, err)
		return
	}

	s.logger.Debug("Scrubbed document",
		logfields.MentionsLinked(res.MentionsLinked),
		logfields.ReferencesShort(res.ReferencesShortened))

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Output)
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
