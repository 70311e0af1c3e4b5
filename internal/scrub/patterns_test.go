package scrub

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func firstMention(content string) (string, bool) {
	m := mentionRE.FindStringSubmatchIndex(content)
	if m == nil {
		return "", false
	}
	return content[m[2]:m[3]], true
}

func TestMentionPattern_BasicMatch(t *testing.T) {
	got, ok := firstMention("cc @bob please review")
	require.True(t, ok)
	require.Equal(t, "@bob", got)
}

func TestMentionPattern_StartOfText(t *testing.T) {
	got, ok := firstMention("@alice hi")
	require.True(t, ok)
	require.Equal(t, "@alice", got)
}

func TestMentionPattern_HyphenatedUsername(t *testing.T) {
	got, ok := firstMention("ping @team-x-1")
	require.True(t, ok)
	require.Equal(t, "@team-x-1", got)
}

func TestMentionPattern_TeamFormKeepsSlash(t *testing.T) {
	got, ok := firstMention("@org/team please look")
	require.True(t, ok)
	require.Equal(t, "@org/", got)
}

func TestMentionPattern_ExcludedBoundaries(t *testing.T) {
	// alphanumeric, backtick, and tilde immediately before the '@' suppress
	// the match
	for _, content := range []string{
		"email me@example.com no",
		"foo`@bob",
		"~@bob",
		"x@y",
	} {
		_, ok := firstMention(content)
		require.False(t, ok, "content %q must not match", content)
	}
}

func TestMentionPattern_PunctuationBoundaryAllowed(t *testing.T) {
	got, ok := firstMention("(@bob)")
	require.True(t, ok)
	require.Equal(t, "@bob", got)
}

func TestMentionPattern_CaseInsensitive(t *testing.T) {
	got, ok := firstMention("cc @Bob-Smith")
	require.True(t, ok)
	require.Equal(t, "@Bob-Smith", got)
}

func TestMentionPattern_AdjacentMentionsNoOverlap(t *testing.T) {
	matches := mentionRE.FindAllStringSubmatchIndex("@a and @b", -1)
	require.Len(t, matches, 2)
	// a mention directly glued to the previous one is mid-identifier
	matches = mentionRE.FindAllStringSubmatchIndex("@a@b", -1)
	require.Len(t, matches, 1)
}

func TestGitHubRefPattern_Captures(t *testing.T) {
	m := githubRefRE.FindStringSubmatch("https://github.com/foo/bar/pull/42")
	require.NotNil(t, m)
	require.Equal(t, "foo/bar", m[1])
	require.Equal(t, "42", m[2])

	// plural forms and missing scheme
	require.True(t, githubRefRE.MatchString("github.com/foo/bar/issues/7"))
	require.True(t, githubRefRE.MatchString("https://github.com/foo/bar/pulls/7"))
	require.False(t, githubRefRE.MatchString("https://github.com/foo/bar"))
	require.False(t, githubRefRE.MatchString("https://example.com/foo/bar/pull/42"))
}

func TestShorthand(t *testing.T) {
	require.Equal(t, "foo/bar#42", string(shorthand([]byte("https://github.com/foo/bar/pull/42"))))
	require.Equal(t, "a/b#1", string(shorthand([]byte("github.com/a/b/issues/1"))))
	// non-matching content passes through
	require.Equal(t, "nope", string(shorthand([]byte("nope"))))
}

func TestPatterns_AdversarialInputTerminates(t *testing.T) {
	// RE2 is linear-time; long hyphen and digit runs must not blow up
	long := "@" + strings.Repeat("a-", 50000) + "!"
	_ = mentionRE.FindAllStringSubmatchIndex(long, -1)
	ref := "github.com/a/b/pull/" + strings.Repeat("9", 100000)
	_ = githubRefRE.MatchString(ref)
}
