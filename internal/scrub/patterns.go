package scrub

import "regexp"

// githubHost is the host replaced by the configured redirect host in
// rewritten link targets.
const githubHost = "github.com"

// usernamePattern mirrors GitHub's username rules: runs of letters or digits
// joined by single hyphens, no leading or trailing hyphen.
const usernamePattern = `[a-z0-9]+(?:-[a-z0-9]+)*`

// mentionRE matches an @username token, optionally with a trailing slash
// (the truncated half of an @org/team mention), that is not preceded by an
// alphanumeric character, a backtick, or a tilde. RE2 has no lookbehind, so
// the boundary is matched as a leading alternation and the mention itself is
// capture group 1.
var mentionRE = regexp.MustCompile("(?i)(?:\\A|[^a-zA-Z0-9`~])(@" + usernamePattern + "/?)")

// githubRefRE matches a GitHub issue or pull request URL, with or without a
// scheme, capturing the owner/repo pair and the reference number.
var githubRefRE = regexp.MustCompile(`(?:https?://)?github\.com/(?P<repo>[^/\s]+/[^/\s]+)/(?:issue|pull)s?/(?P<number>\d+)`)

// shorthand returns the compact "owner/repo#number" form for content that
// matches githubRefRE, using the content's own captures.
func shorthand(content []byte) []byte {
	m := githubRefRE.FindSubmatch(content)
	if m == nil {
		return content
	}
	out := make([]byte, 0, len(m[1])+1+len(m[2]))
	out = append(out, m[1]...)
	out = append(out, '#')
	return append(out, m[2]...)
}
