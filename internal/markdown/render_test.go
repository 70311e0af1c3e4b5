package markdown

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	gmast "github.com/yuin/goldmark/ast"
)

func renderRoundTrip(t *testing.T, source []byte) string {
	t.Helper()
	root, err := Parse(source, Options{})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, source, root))
	return buf.String()
}

func TestRender_RoundTripsCanonicalMarkdown(t *testing.T) {
	cases := map[string]string{
		"heading and paragraph": "# Title\n\nbody text\n",
		"bullet list":           "- item one\n- item two\n",
		"ordered list":          "1. one\n1. two\n",
		"nested list":           "- a\n  - b\n",
		"blockquote":            "> quoted text\n",
		"fenced code":           "```go\nfmt.Println()\n```\n",
		"emphasis":              "*em* and **strong**\n",
		"code span":             "use `go test` here\n",
		"inline link":           "[docs](https://example.com/docs)\n",
		"image":                 "![alt](https://example.com/img.png)\n",
		"hard break":            "line one  \nline two\n",
		"soft break":            "line one\nline two\n",
		"bare autolink":         "see https://example.com/x for details\n",
		"email":                 "mail x@y.com\n",
		"classic autolink":      "<mailto:x@y.com>\n",
		"thematic break":        "para\n\n---\n",
		"strikethrough":         "~~gone~~\n",
		"task list":             "- [ ] todo\n- [x] done\n",
		"table":                 "| a | b |\n| --- | --- |\n| c | d |\n",
		"html block":            "<div>\nhi\n</div>\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, doc, renderRoundTrip(t, []byte(doc)))
		})
	}
}

func TestRender_SetextHeadingBecomesATX(t *testing.T) {
	got := renderRoundTrip(t, []byte("Title\n=====\n"))
	require.Equal(t, "# Title\n", got)
}

func TestRender_FenceContainingFenceUsesTildes(t *testing.T) {
	got := renderRoundTrip(t, []byte("````\n```\ninner\n```\n````\n"))
	require.Equal(t, "~~~\n```\ninner\n```\n~~~\n", got)
}

func TestRender_OwnedStringNode(t *testing.T) {
	source := []byte("[placeholder](https://example.com)\n")
	root, err := Parse(source, Options{})
	require.NoError(t, err)

	link := root.FirstChild().FirstChild().(*gmast.Link)
	old := link.FirstChild()
	link.ReplaceChild(link, old, gmast.NewString([]byte("replaced")))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, source, root))
	require.Equal(t, "[replaced](https://example.com)\n", buf.String())
}

func TestRender_DestinationWithSpaceGetsBrackets(t *testing.T) {
	source := []byte("[x](https://example.com)\n")
	root, err := Parse(source, Options{})
	require.NoError(t, err)

	link := root.FirstChild().FirstChild().(*gmast.Link)
	link.Destination = []byte("https://example.com/a b")

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, source, root))
	require.Equal(t, "[x](<https://example.com/a b>)\n", buf.String())
}

func TestNodeText_ConcatenatesDescendants(t *testing.T) {
	source := []byte("a **b** `c`\n")
	root, err := Parse(source, Options{})
	require.NoError(t, err)

	para := root.FirstChild()
	require.Equal(t, "a b c", string(NodeText(para, source)))
}

func TestParse_GFMPromotesBareURLs(t *testing.T) {
	source := []byte("see https://example.com/x here\n")
	root, err := Parse(source, Options{})
	require.NoError(t, err)

	var sawAutoLink bool
	for c := root.FirstChild().FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == gmast.KindAutoLink {
			sawAutoLink = true
		}
	}
	require.True(t, sawAutoLink)
}
