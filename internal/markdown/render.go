package markdown

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"

	gmast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	// ordered list item marker without the following content
	orderedMarker = regexp.MustCompile(`^\d{1,9}[.)] {1,4}`)
	// fence block line
	fenceLine = regexp.MustCompile("^ {0,3}```")
	// GFM autolink shapes; URLs matching these re-render without angle brackets
	gfmHTTP  = regexp.MustCompile(`^https?://(?:[a-zA-Z\d\-_]+\.)*[a-zA-Z\d\-]+\.[a-zA-Z\d\-]+[^ <]*$`)
	gfmWWW   = regexp.MustCompile(`^www\.(?:[a-zA-Z\d\-_]+\.)*[a-zA-Z\d\-]+\.[a-zA-Z\d\-]+[^ <]*$`)
	gfmEmail = regexp.MustCompile(`^[a-zA-Z\d.\-+]+@(?:[a-zA-Z\d\-_]+\.)+[a-zA-Z\d\-_]+$`)
)

// Render serializes a (possibly mutated) Goldmark AST back to Markdown.
// Raw HTML blocks and inline raw HTML are emitted verbatim; sanitizing them
// is the downstream renderer's job.
func Render(w io.Writer, source []byte, root gmast.Node) error {
	r := &renderState{
		source:   source,
		buf:      &bytes.Buffer{},
		indents:  make([]byte, 0, 20),
		markers:  make([]int, 0, 5),
		emphasis: make([]byte, 0, 5),
	}
	err := gmast.Walk(root, r.render)
	if err != nil {
		return err
	}
	_, err = w.Write(r.buf.Bytes())
	return err
}

// renderState holds the output buffer plus indentation and inline-nesting
// state accumulated during the walk.
type renderState struct {
	source   []byte
	buf      *bytes.Buffer
	indents  []byte
	markers  []int
	emphasis []byte
	inTable  bool
}

func (r *renderState) render(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	switch node.Kind() {
	case gmast.KindDocument:
		return r.renderDocument(node, entering)
	// commonmark container blocks
	case gmast.KindBlockquote:
		return r.renderBlockquote(node, entering)
	case gmast.KindList:
		return r.renderList(node, entering)
	case gmast.KindListItem:
		return r.renderListItem(node, entering)
	// commonmark blocks
	case gmast.KindHeading:
		return r.renderHeading(node, entering)
	case gmast.KindCodeBlock, gmast.KindFencedCodeBlock:
		return r.renderFencedCodeBlock(node, entering)
	case gmast.KindHTMLBlock:
		return r.renderHTMLBlock(node, entering)
	case gmast.KindParagraph, gmast.KindTextBlock:
		return r.renderParagraph(node, entering)
	case gmast.KindThematicBreak:
		return r.renderThematicBreak(node, entering)
	// commonmark inlines
	case gmast.KindAutoLink:
		return r.renderAutoLink(node, entering)
	case gmast.KindCodeSpan:
		return r.renderCodeSpan(node, entering)
	case gmast.KindEmphasis:
		return r.renderEmphasis(node, entering)
	case gmast.KindLink:
		return r.renderLink(node, entering)
	case gmast.KindImage:
		return r.renderImage(node, entering)
	case gmast.KindRawHTML:
		return r.renderRawHTML(node, entering)
	case gmast.KindText:
		return r.renderText(node, entering)
	case gmast.KindString:
		return r.renderString(node, entering)
	// GFM extension blocks
	case extast.KindTable:
		return r.renderTable(node, entering)
	case extast.KindTableHeader:
		return r.renderTableHeader(node, entering)
	case extast.KindTableRow:
		return r.renderTableRow(node, entering)
	case extast.KindTableCell:
		return r.renderTableCell(node, entering)
	// GFM extension inlines
	case extast.KindTaskCheckBox:
		return r.renderTaskCheckBox(node, entering)
	case extast.KindStrikethrough:
		return r.renderStrikethrough(node, entering)
	default:
		return gmast.WalkContinue, nil
	}
}

func (r *renderState) renderDocument(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering && n.HasChildren() {
		cnt := r.buf.Bytes()
		if len(cnt) > 0 && cnt[len(cnt)-1] != '\n' {
			r.writeNewline(false)
		}
	}
	return gmast.WalkContinue, nil
}

// commonmark container blocks

func (r *renderState) renderBlockquote(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		r.startBlock(n)
		// no laziness - block new lines will always start with '>'
		_, _ = r.buf.Write([]byte("> "))
		r.indents = append(r.indents, '>', ' ')
	} else {
		r.indents = r.indents[:len(r.indents)-2]
		forceBlockBreak(n.NextSibling())
	}
	return gmast.WalkContinue, nil
}

func (r *renderState) renderList(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		r.startBlock(n)
	}
	return gmast.WalkContinue, nil
}

func (r *renderState) renderListItem(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		n := node.(*gmast.ListItem)
		r.startBlock(n)
		marker := listItemMarker(n)
		_, _ = r.buf.Write(marker)
		r.markers = append(r.markers, len(marker))
		r.indents = append(r.indents, bytes.Repeat([]byte{' '}, len(marker))...)
	} else {
		r.indents = r.indents[:len(r.indents)-r.markers[len(r.markers)-1]]
		r.markers = r.markers[:len(r.markers)-1]
	}
	return gmast.WalkContinue, nil
}

// commonmark blocks

func (r *renderState) renderHeading(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	n := node.(*gmast.Heading)
	atx := true
	if n.Lines().Len() > 1 && n.Level <= 2 {
		atx = false // multiline heading survives only as Setext
	}
	if entering {
		r.startBlock(n)
		if atx {
			_, _ = r.buf.Write(bytes.Repeat([]byte{'#'}, n.Level))
			_ = r.buf.WriteByte(' ')
		}
	} else if !atx {
		r.writeNewline(true)
		if n.Level == 1 {
			_, _ = r.buf.Write([]byte("==="))
		} else {
			_, _ = r.buf.Write([]byte("---"))
		}
	}
	return gmast.WalkContinue, nil
}

func (r *renderState) renderFencedCodeBlock(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		return gmast.WalkSkipChildren, nil
	}
	var content bytes.Buffer
	indents := len(r.indents) > 0
	var fb byte = '`'
	segments := n.Lines()
	for _, l := range segments.Sliced(0, segments.Len()) {
		if fenceLine.Match(l.Value(r.source)) {
			fb = '~' // content contains a backtick fence
		}
		if indents {
			_, _ = content.Write(r.indents)
		}
		_, _ = content.Write(l.Value(r.source))
	}
	r.startBlock(n)
	_, _ = r.buf.Write([]byte{fb, fb, fb})
	if fn, ok := n.(*gmast.FencedCodeBlock); ok {
		if language := fn.Language(r.source); language != nil {
			_, _ = r.buf.Write(language)
		}
	}
	r.writeNewline(false)
	if content.Len() > 0 {
		_, _ = r.buf.Write(content.Bytes())
	}
	if indents {
		_, _ = r.buf.Write(r.indents)
	}
	_, _ = r.buf.Write([]byte{fb, fb, fb})
	return gmast.WalkSkipChildren, nil
}

func (r *renderState) renderHTMLBlock(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	n := node.(*gmast.HTMLBlock)
	if entering {
		r.startBlock(n)
		r.copySegments(r.buf, n.Lines(), len(r.indents) > 0)
		// HTMLBlockType 1 to 5 end condition is not a blank line
		if n.HasClosure() {
			if len(r.indents) > 0 {
				_, _ = r.buf.Write(r.indents)
			}
			_, _ = r.buf.Write(n.ClosureLine.Value(r.source))
		}
	}
	return gmast.WalkSkipChildren, nil
}

func (r *renderState) renderParagraph(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		r.startBlock(n)
	}
	return gmast.WalkContinue, nil
}

func (r *renderState) renderThematicBreak(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		r.startBlock(n)
		if n.HasBlankPreviousLines() {
			_, _ = r.buf.Write([]byte("---"))
		} else {
			// '-' could be read as a Setext heading underline
			_, _ = r.buf.Write([]byte("***"))
		}
	}
	return gmast.WalkSkipChildren, nil
}

// commonmark inlines

func (r *renderState) renderAutoLink(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		n := node.(*gmast.AutoLink)
		label := n.Label(r.source)
		if bytes.HasPrefix(bytes.ToLower(label), []byte("mailto:")) {
			n.AutoLinkType = gmast.AutoLinkEmail // fix the node type
		}
		classic := needsAngleBrackets(label, r.buf.Bytes())
		if classic {
			_ = r.buf.WriteByte('<')
		}
		_, _ = r.buf.Write(label)
		if classic {
			_ = r.buf.WriteByte('>')
		}
	}
	return gmast.WalkSkipChildren, nil
}

func (r *renderState) renderCodeSpan(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		return gmast.WalkSkipChildren, nil
	}
	delim := []byte{'`'}
	txt := NodeText(n, r.source)
	c := bytes.Count(txt, []byte{'`'}) // odd backtick count needs a "``" delimiter
	if c%2 == 0 && n.PreviousSibling() != nil {
		idx := bytes.LastIndexByte(r.buf.Bytes(), '\n')
		if idx == -1 {
			idx = 0
		}
		c = bytes.Count(r.buf.Bytes()[idx:], []byte{'`'}) // odd backtick count on the line so far
	}
	if c%2 != 0 {
		delim = append(delim, '`')
	}
	// content starting or ending with '`' or ' ' needs padding spaces
	space := len(txt) > 0 && (txt[0] == '`' || txt[0] == ' ' || txt[len(txt)-1] == '`' || txt[len(txt)-1] == ' ')
	if space && len(txt) == bytes.Count(txt, []byte{' '}) {
		space = false // all-space content stays as-is
	}
	_, _ = r.buf.Write(delim)
	if space {
		_ = r.buf.WriteByte(' ')
	}
	if r.inTable { // the parser unescaped '|' inside the code span
		txt = escapePipes(txt)
	}
	txt = bytes.ReplaceAll(txt, []byte{'\n'}, []byte{' '})
	_, _ = r.buf.Write(txt)
	if space {
		_ = r.buf.WriteByte(' ')
	}
	_, _ = r.buf.Write(delim)
	return gmast.WalkSkipChildren, nil
}

func (r *renderState) renderEmphasis(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	n := node.(*gmast.Emphasis)
	if entering {
		ch, _ := r.emphasisChar(n)
		_, _ = r.buf.Write(bytes.Repeat([]byte{ch}, n.Level))
		r.emphasis = append(r.emphasis, ch)
	} else {
		_, _ = r.buf.Write(bytes.Repeat([]byte{r.emphasis[len(r.emphasis)-1]}, n.Level))
		r.emphasis = r.emphasis[:len(r.emphasis)-1]
	}
	return gmast.WalkContinue, nil
}

func (r *renderState) renderLink(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		_ = r.buf.WriteByte('[')
	} else {
		n := node.(*gmast.Link)
		_, _ = r.buf.Write([]byte("]("))
		r.writeDestination(n.Destination)
		r.writeTitle(n.Title)
		_ = r.buf.WriteByte(')')
	}
	return gmast.WalkContinue, nil
}

func (r *renderState) renderImage(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		_, _ = r.buf.Write([]byte("!["))
	} else {
		n := node.(*gmast.Image)
		_, _ = r.buf.Write([]byte("]("))
		r.writeDestination(n.Destination)
		r.writeTitle(n.Title)
		_ = r.buf.WriteByte(')')
	}
	return gmast.WalkContinue, nil
}

func (r *renderState) writeDestination(dest []byte) {
	wrap := destNeedsBrackets(dest)
	if wrap {
		_ = r.buf.WriteByte('<')
	}
	_, _ = r.buf.Write(dest)
	if wrap {
		_ = r.buf.WriteByte('>')
	}
}

func (r *renderState) writeTitle(title []byte) {
	if title == nil {
		return
	}
	q := titleQuote(title)
	_ = r.buf.WriteByte(' ')
	_ = r.buf.WriteByte(q)
	r.writeIndented(title) // support multi-line titles
	if q == '(' {
		q = ')'
	}
	_ = r.buf.WriteByte(q)
}

func (r *renderState) renderRawHTML(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		n := node.(*gmast.RawHTML)
		var content bytes.Buffer
		r.copySegments(&content, n.Segments, false)
		r.writeIndented(content.Bytes())
	}
	return gmast.WalkSkipChildren, nil
}

func (r *renderState) renderText(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		n := node.(*gmast.Text)
		txt := n.Segment.Value(r.source)
		r.escapeLeadingMarker(txt, n)
		if n.HardLineBreak() || n.SoftLineBreak() || nextIsBlankBreak(node.NextSibling(), r.source) {
			txt = bytes.TrimRight(txt, " ")
		}
		_, _ = r.buf.Write(txt)
		indents := len(r.indents) > 0
		if n.HardLineBreak() {
			_, _ = r.buf.Write([]byte("  "))
			r.writeNewline(indents)
		} else if n.SoftLineBreak() {
			r.writeNewline(indents)
		}
	}
	return gmast.WalkSkipChildren, nil
}

// renderString emits owned text inserted by tree-rewriting passes; it has no
// source segment and never carries line-break flags.
func (r *renderState) renderString(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		n := node.(*gmast.String)
		_, _ = r.buf.Write(n.Value)
	}
	return gmast.WalkSkipChildren, nil
}

// GFM extension blocks

func (r *renderState) renderTable(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		// 'blankPreviousLines' is not propagated during transformations
		n.SetBlankPreviousLines(true)
		r.startBlock(n)
		r.inTable = true
	} else {
		r.inTable = false
	}
	return gmast.WalkContinue, nil
}

func (r *renderState) renderTableHeader(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		n := node.(*extast.TableHeader)
		if n.Alignments == nil {
			if t, ok := n.Parent().(*extast.Table); ok {
				n.Alignments = t.Alignments
			}
		}
		_ = r.buf.WriteByte('|')
		r.writeNewline(len(r.indents) > 0)
		for _, a := range n.Alignments {
			_ = r.buf.WriteByte('|')
			align := []byte(" --- ")
			switch a {
			case extast.AlignLeft:
				align = []byte(" :-- ")
			case extast.AlignRight:
				align = []byte(" --: ")
			case extast.AlignCenter:
				align = []byte(" :-: ")
			}
			_, _ = r.buf.Write(align)
		}
		_ = r.buf.WriteByte('|')
	}
	return gmast.WalkContinue, nil
}

func (r *renderState) renderTableRow(_ gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		r.writeNewline(len(r.indents) > 0)
	} else {
		_ = r.buf.WriteByte('|')
	}
	return gmast.WalkContinue, nil
}

func (r *renderState) renderTableCell(_ gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		_, _ = r.buf.Write([]byte("| "))
	} else {
		_ = r.buf.WriteByte(' ')
	}
	return gmast.WalkContinue, nil
}

// GFM extension inlines

func (r *renderState) renderTaskCheckBox(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		n := node.(*extast.TaskCheckBox)
		if n.IsChecked {
			_, _ = r.buf.Write([]byte("[x] "))
		} else {
			_, _ = r.buf.Write([]byte("[ ] "))
		}
	}
	return gmast.WalkContinue, nil
}

func (r *renderState) renderStrikethrough(_ gmast.Node, _ bool) (gmast.WalkStatus, error) {
	_, _ = r.buf.Write([]byte("~~"))
	return gmast.WalkContinue, nil
}

// ---------------------------

func (r *renderState) writeNewline(indents bool) {
	_ = r.buf.WriteByte('\n')
	if indents {
		_, _ = r.buf.Write(r.indents)
	}
}

// startBlock separates a block from its predecessor with the required
// newlines and indentation.
func (r *renderState) startBlock(n gmast.Node) {
	if n.PreviousSibling() == nil {
		return
	}
	// raw blocks like HTMLBlock end with '\n' already
	cnt := r.buf.Bytes()
	if len(cnt) > 0 && cnt[len(cnt)-1] != '\n' {
		_ = r.buf.WriteByte('\n')
	}
	if len(r.indents) > 0 {
		_, _ = r.buf.Write(r.indents)
	}
	// 'blankPreviousLines' is not calculated in blockquote scope, so the
	// blank line must be forced there for sibling paragraphs
	if n.HasBlankPreviousLines() || r.blankLineInBlockquote(n) {
		_ = r.buf.WriteByte('\n')
		if len(r.indents) > 0 {
			_, _ = r.buf.Write(r.indents)
		}
	}
}

func (r *renderState) blankLineInBlockquote(n gmast.Node) bool {
	if bytes.IndexByte(r.indents, '>') == -1 || n.PreviousSibling() == nil {
		return false
	}
	k := n.Kind()
	if k == gmast.KindText || k == gmast.KindParagraph || k == gmast.KindTextBlock {
		pk := n.PreviousSibling().Kind()
		return pk == gmast.KindText || pk == gmast.KindParagraph || pk == gmast.KindTextBlock
	}
	return false
}

func (r *renderState) copySegments(w io.Writer, segments *text.Segments, indents bool) {
	for i, l := range segments.Sliced(0, segments.Len()) {
		if indents && i > 0 {
			_, _ = w.Write(r.indents)
		}
		_, _ = w.Write(l.Value(r.source))
	}
}

// writeIndented writes multi-line content with the current indentation
// applied to every line after the first.
func (r *renderState) writeIndented(b []byte) {
	if len(r.indents) == 0 {
		_, _ = r.buf.Write(b)
		return
	}
	reader := bufio.NewReader(bytes.NewReader(b))
	for i := 0; ; i++ {
		l, err := reader.ReadBytes('\n')
		if len(l) > 0 {
			if i > 0 {
				_, _ = r.buf.Write(r.indents)
			}
			_, _ = r.buf.Write(l)
		}
		if err != nil {
			break // EOF
		}
	}
}

// emphasisChar picks '*' or '_' so nested emphasis and literal asterisks
// inside the emphasized text survive a re-parse.
func (r *renderState) emphasisChar(n gmast.Node) (ch byte, txt []byte) {
	ch = '*'
	if n.Kind() == gmast.KindEmphasis && n.FirstChild() != nil && n.FirstChild().Kind() == gmast.KindEmphasis {
		if n.(*gmast.Emphasis).Level == 1 && n.FirstChild().(*gmast.Emphasis).Level == 1 {
			cch, _ := r.emphasisChar(n.FirstChild())
			if cch == '*' {
				ch = '_' // nested <em> needs alternating delimiters
			}
			return
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			txt = append(txt, t.Segment.Value(r.source)...)
		case *gmast.String:
			txt = append(txt, t.Value...)
		case *gmast.Emphasis: // skip
		default:
			_, ct := r.emphasisChar(c)
			txt = append(txt, ct...)
		}
	}
	if n.Kind() == gmast.KindEmphasis {
		for i, b := range txt {
			if b == '*' {
				if i-1 >= 0 && txt[i-1] == '\\' {
					continue
				}
				ch = '_' // unescaped asterisk in content
				break
			}
		}
	}
	return
}

// escapeLeadingMarker guards text that would re-parse as a different block
// (list marker, heading) when it lands at the start of a line.
func (r *renderState) escapeLeadingMarker(txt []byte, n *gmast.Text) {
	if n.PreviousSibling() == nil || len(txt) == 0 {
		return
	}
	idx := bytes.LastIndexByte(r.buf.Bytes(), '\n')
	if idx == -1 {
		idx = 0
	}
	last := r.buf.Bytes()[idx:]
	if len(last) == 0 || (last[len(last)-1] != '\n' && !bytes.Equal(last[1:], r.indents)) {
		return
	}
	var indent bool
	switch txt[0] {
	case '-', '+', '*', '#', '=':
		indent = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		indent = orderedMarker.Match(txt)
	}
	if indent {
		_, _ = r.buf.Write([]byte("    "))
	}
}

// forceBlockBreak sets a blank previous line so lazy continuation does not
// merge a following paragraph into the block just closed.
func forceBlockBreak(n gmast.Node) {
	if n != nil && !n.HasBlankPreviousLines() {
		if n.Kind() == gmast.KindParagraph || n.Kind() == gmast.KindTextBlock {
			n.SetBlankPreviousLines(true)
		}
	}
}

func listItemMarker(n *gmast.ListItem) []byte {
	p := n.Parent().(*gmast.List)
	if p.IsOrdered() {
		return []byte(fmt.Sprintf("%d%c ", p.Start, p.Marker))
	}
	return []byte{p.Marker, ' '}
}

// needsAngleBrackets reports whether an autolink must re-render in the
// classic <...> form because GFM autolinking would not pick it up bare.
func needsAngleBrackets(link []byte, written []byte) bool {
	if isTrailingPunctuation(link[len(link)-1]) {
		return true
	}
	if len(written) > 0 && !isAutolinkDelimiter(written[len(written)-1]) {
		return true
	}
	if !bytes.Equal(link, util.URLEscape(link, false)) {
		return true
	}
	if gfmHTTP.Match(link) {
		if len(written) > 0 && written[len(written)-1] == '(' {
			// `(https://foo.bar).` would not autolink after '('
			return true
		}
		return false
	}
	if gfmWWW.Match(link) {
		return false
	}
	return !gfmEmail.Match(link)
}

func isAutolinkDelimiter(b byte) bool {
	switch b {
	case '\n', '\r', '\t', '\f', '\v', '\x85', '\xa0', ' ', '*', '_', '~', '(':
		return true
	default:
		return false
	}
}

func isTrailingPunctuation(b byte) bool {
	switch b {
	case '?', '!', '.', ',', ':', '*', '_', '~':
		return true
	default:
		return false
	}
}

// titleQuote picks a quoting character that does not appear unescaped in the
// title.
func titleQuote(title []byte) byte {
	var dq, sq bool
	for i, b := range title {
		if i-1 >= 0 && title[i-1] == '\\' {
			continue
		}
		if b == '"' {
			dq = true
		} else if b == '\'' {
			sq = true
		}
	}
	if dq && sq {
		return '('
	} else if dq {
		return '\''
	}
	return '"'
}

// destNeedsBrackets reports whether a link destination must be wrapped in
// angle brackets (spaces, control characters, or unbalanced parentheses).
func destNeedsBrackets(dest []byte) bool {
	var open, escapedOpen int
	var closed, escapedClosed int
	for i, b := range dest {
		if b <= '\x1f' || b == '\x7f' || b == '\x20' {
			return true
		}
		if b == '(' {
			open++
			if i-1 >= 0 && dest[i-1] == '\\' {
				escapedOpen++
			}
		} else if b == ')' {
			closed++
			if i-1 >= 0 && dest[i-1] == '\\' {
				escapedClosed++
			}
		}
	}
	return (open-escapedOpen)-(closed-escapedClosed) != 0
}

func nextIsBlankBreak(next gmast.Node, source []byte) bool {
	if next != nil && next.Kind() == gmast.KindText {
		n := next.(*gmast.Text)
		if n.HardLineBreak() || n.SoftLineBreak() {
			return len(bytes.TrimSpace(n.Segment.Value(source))) == 0
		}
	}
	return false
}

// escapePipes escapes '|' in code span content when inside a table, since
// the parser unescapes them there.
func escapePipes(t []byte) []byte {
	var out []byte
	idx := 0
	for i, b := range t {
		if b != '|' {
			continue
		}
		if i > 0 && t[i-1] == '\\' {
			continue
		}
		out = append(out, t[idx:i]...)
		out = append(out, '\\', '|')
		idx = i + 1
	}
	if idx > 0 {
		return append(out, t[idx:]...)
	}
	return t
}
