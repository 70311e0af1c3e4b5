// Package logfields defines canonical slog field helpers so log key names do
// not drift across packages.
package logfields

import "log/slog"

// Canonical log field name constants.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyDurationMS = "duration_ms"
	KeyMentions   = "mentions_linked"
	KeyReferences = "references_shortened"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(s int) slog.Attr          { return slog.Int(KeyStatus, s) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func MentionsLinked(n int) slog.Attr  { return slog.Int(KeyMentions, n) }
func ReferencesShort(n int) slog.Attr { return slog.Int(KeyReferences, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
