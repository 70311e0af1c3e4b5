package scrub

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"
)

// ShortenReferences rewrites hyperlinks targeting GitHub issues or pull
// requests: descendant text matching the reference shape becomes the compact
// "owner/repo#number" form, and the target's github.com host is replaced by
// redirectHost (a no-op when redirectHost is empty). Bare autolinked URLs
// matching the same shape are replaced by an equivalent shorthand link.
//
// It returns the number of references rewritten.
func ShortenReferences(root gmast.Node, source []byte, redirectHost string) int {
	host := redirectHost
	if host == "" {
		host = githubHost
	}

	var links []*gmast.Link
	var autoLinks []*gmast.AutoLink
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *gmast.Link:
			if githubRefRE.Match(v.Destination) {
				links = append(links, v)
			}
			// an autolink inside existing link text must not become a
			// nested link
			return gmast.WalkSkipChildren, nil
		case *gmast.Image:
			return gmast.WalkSkipChildren, nil
		case *gmast.AutoLink:
			if githubRefRE.Match(v.URL(source)) {
				autoLinks = append(autoLinks, v)
			}
		}
		return gmast.WalkContinue, nil
	})

	shortened := 0
	for _, l := range links {
		rewriteLinkText(l, source)
		l.Destination = []byte(strings.Replace(string(l.Destination), githubHost, host, -1))
		shortened++
	}
	for _, al := range autoLinks {
		url := al.URL(source)
		link := gmast.NewLink()
		link.Destination = []byte(strings.Replace(string(url), githubHost, host, -1))
		link.AppendChild(link, gmast.NewString(shorthand(url)))
		parent := al.Parent()
		parent.ReplaceChild(parent, al, link)
		shortened++
	}
	return shortened
}

// rewriteLinkText replaces each descendant text node that itself matches the
// reference shape with its own shorthand; the link text may reference a
// different (though typically identical) issue than the destination.
func rewriteLinkText(l *gmast.Link, source []byte) {
	var pending []gmast.Node
	_ = gmast.Walk(l, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *gmast.Text:
			if githubRefRE.Match(v.Segment.Value(source)) {
				pending = append(pending, v)
			}
		case *gmast.String:
			if githubRefRE.Match(v.Value) {
				pending = append(pending, v)
			}
		case *gmast.AutoLink:
			if githubRefRE.Match(v.URL(source)) {
				pending = append(pending, v)
			}
		}
		return gmast.WalkContinue, nil
	})

	for _, n := range pending {
		var content []byte
		switch v := n.(type) {
		case *gmast.Text:
			content = v.Segment.Value(source)
		case *gmast.String:
			content = v.Value
		case *gmast.AutoLink:
			content = v.URL(source)
		}
		parent := n.Parent()
		parent.ReplaceChild(parent, n, gmast.NewString(shorthand(content)))
	}
}
