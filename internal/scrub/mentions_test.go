package scrub

import (
	"testing"

	"github.com/stretchr/testify/require"
	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/prscrub/internal/markdown"
)

func parseDoc(t *testing.T, source []byte) gmast.Node {
	t.Helper()
	root, err := markdown.Parse(source, markdown.Options{})
	require.NoError(t, err)
	return root
}

func childKinds(n gmast.Node) []gmast.NodeKind {
	var kinds []gmast.NodeKind
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		kinds = append(kinds, c.Kind())
	}
	return kinds
}

func TestLinkMentions_SplicesAroundMention(t *testing.T) {
	source := []byte("cc @bob please review\n")
	root := parseDoc(t, source)

	linked, kept := LinkMentions(root, source)
	require.Equal(t, 1, linked)
	require.Equal(t, 0, kept)

	para := root.FirstChild()
	require.Equal(t, gmast.KindParagraph, para.Kind())
	require.Equal(t, []gmast.NodeKind{gmast.KindText, gmast.KindLink, gmast.KindText}, childKinds(para))

	prefix := para.FirstChild().(*gmast.Text)
	require.Equal(t, "cc ", string(prefix.Segment.Value(source)))

	link := prefix.NextSibling().(*gmast.Link)
	require.Equal(t, "https://github.com/bob", string(link.Destination))
	require.Equal(t, "@bob", string(markdown.NodeText(link, source)))

	tail := link.NextSibling().(*gmast.Text)
	require.Equal(t, " please review", string(tail.Segment.Value(source)))
}

func TestLinkMentions_TeamMentionLeavesNodeUntouched(t *testing.T) {
	source := []byte("@org/team please look\n")
	root := parseDoc(t, source)

	para := root.FirstChild()
	original := para.FirstChild()

	linked, kept := LinkMentions(root, source)
	require.Equal(t, 0, linked)
	require.Equal(t, 1, kept)

	// the node is not even replaced by an equivalent copy
	require.Equal(t, 1, para.ChildCount())
	require.Same(t, original, para.FirstChild())
}

func TestLinkMentions_MultipleMentionsOneNode(t *testing.T) {
	source := []byte("@a and @b")
	root := parseDoc(t, source)

	linked, kept := LinkMentions(root, source)
	require.Equal(t, 2, linked)
	require.Equal(t, 0, kept)

	para := root.FirstChild()
	require.Equal(t, []gmast.NodeKind{gmast.KindLink, gmast.KindText, gmast.KindLink}, childKinds(para))

	first := para.FirstChild().(*gmast.Link)
	require.Equal(t, "https://github.com/a", string(first.Destination))
	mid := first.NextSibling().(*gmast.Text)
	require.Equal(t, " and ", string(mid.Segment.Value(source)))
	last := mid.NextSibling().(*gmast.Link)
	require.Equal(t, "https://github.com/b", string(last.Destination))
}

func TestLinkMentions_PreservesLineBreakFlags(t *testing.T) {
	source := []byte("cc @bob\nnext line\n")
	root := parseDoc(t, source)

	linked, _ := LinkMentions(root, source)
	require.Equal(t, 1, linked)

	para := root.FirstChild()
	// prefix, link, then an empty tail that still carries the soft break
	require.Equal(t, []gmast.NodeKind{gmast.KindText, gmast.KindLink, gmast.KindText, gmast.KindText}, childKinds(para))
	tail := para.FirstChild().NextSibling().NextSibling().(*gmast.Text)
	require.Empty(t, tail.Segment.Value(source))
	require.True(t, tail.SoftLineBreak())
}

func TestLinkMentions_SkipsCodeAndExistingLinks(t *testing.T) {
	source := []byte("use `@bob` or [see @carl](https://example.com)\n\n    @indented\n")
	root := parseDoc(t, source)

	linked, kept := LinkMentions(root, source)
	require.Equal(t, 0, linked)
	require.Equal(t, 0, kept)
}

func TestLinkMentions_MentionInBlockquoteAndList(t *testing.T) {
	source := []byte("> thanks @dee\n\n- fixed by @ed\n")
	root := parseDoc(t, source)

	linked, kept := LinkMentions(root, source)
	require.Equal(t, 2, linked)
	require.Equal(t, 0, kept)
}

func TestLinkMentions_Idempotent(t *testing.T) {
	source := []byte("cc @bob\n")
	root := parseDoc(t, source)

	linked, _ := LinkMentions(root, source)
	require.Equal(t, 1, linked)

	// a second pass finds the mention already inside a link
	linked, kept := LinkMentions(root, source)
	require.Equal(t, 0, linked)
	require.Equal(t, 0, kept)
}
