package scrub

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const profileURLPrefix = "https://github.com/"

// LinkMentions replaces every plain-text @username mention in the tree with a
// hyperlink to that user's GitHub profile, so publishing the text does not
// ping the user. Mentions inside existing links and code are left alone, as
// is the ambiguous @org/ form (only the organization half of an @org/team
// mention matches, and linking it would point at the wrong page).
//
// It returns the number of mentions linked and the number kept as text.
func LinkMentions(root gmast.Node, source []byte) (linked, kept int) {
	// Collect first, mutate after: splicing siblings during the walk would
	// disturb traversal order.
	var pending []*gmast.Text
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch n.Kind() {
		case gmast.KindLink, gmast.KindAutoLink, gmast.KindImage:
			// never nest a mention link inside an existing link or alt text
			return gmast.WalkSkipChildren, nil
		case gmast.KindCodeSpan, gmast.KindCodeBlock, gmast.KindFencedCodeBlock, gmast.KindHTMLBlock:
			return gmast.WalkSkipChildren, nil
		}
		if t, ok := n.(*gmast.Text); ok {
			if mentionRE.Match(t.Segment.Value(source)) {
				pending = append(pending, t)
			}
		}
		return gmast.WalkContinue, nil
	})

	for _, t := range pending {
		l, k := spliceMentions(t, source)
		linked += l
		kept += k
	}
	return linked, kept
}

// spliceMentions splits one text node around its mention matches, inserting
// the replacement sequence before the node and detaching the original. A
// node whose only matches are the @org/ form is left untouched.
func spliceMentions(t *gmast.Text, source []byte) (linked, kept int) {
	parent := t.Parent()
	if parent == nil {
		return 0, 0
	}
	seg := t.Segment
	content := string(seg.Value(source))

	var nodes []gmast.Node
	runStart := 0
	for _, m := range mentionRE.FindAllStringSubmatchIndex(content, -1) {
		start, end := m[2], m[3]
		mention := content[start:end]
		if strings.HasSuffix(mention, "/") {
			// truncated @org/team form: the current text run absorbs it
			kept++
			continue
		}
		if start > runStart {
			nodes = append(nodes, subText(seg, runStart, start))
		}
		link := gmast.NewLink()
		link.Destination = []byte(profileURLPrefix + mention[1:])
		link.AppendChild(link, subText(seg, start, end))
		nodes = append(nodes, link)
		runStart = end
		linked++
	}
	if linked == 0 {
		return 0, kept
	}

	// the trailing run carries the original node's line-break flags, even
	// when empty, so line structure survives rendering
	if runStart < len(content) || t.SoftLineBreak() || t.HardLineBreak() {
		tail := subText(seg, runStart, len(content))
		tail.SetSoftLineBreak(t.SoftLineBreak())
		tail.SetHardLineBreak(t.HardLineBreak())
		nodes = append(nodes, tail)
	}

	for _, n := range nodes {
		parent.InsertBefore(parent, t, n)
	}
	parent.RemoveChild(parent, t)
	return linked, kept
}

// subText creates a text node over a sub-range of the original segment, so
// every emitted piece stays source-backed.
func subText(seg text.Segment, from, to int) *gmast.Text {
	return gmast.NewTextSegment(text.NewSegment(seg.Start+from, seg.Start+to))
}
