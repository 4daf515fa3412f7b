package markdown

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// headingTags maps heading levels to BBCode open/close pairs.
//
//nolint:gochecknoglobals // Immutable lookup table.
var headingTags = map[int][2]string{
	1: {"[size=150][b]", "[/b][/size]"},
	2: {"[size=125][b]", "[/b][/size]"},
}

// Renderer renders a goldmark AST as BBCode.
type Renderer struct{}

// NewRenderer creates a BBCode node renderer.
func NewRenderer() renderer.NodeRenderer {
	return &Renderer{}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	// Blocks.
	reg.Register(ast.KindDocument, r.renderNothing)
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindTextBlock, r.renderTextBlock)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindThematicBreak, r.renderThematicBreak)
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)

	// Inlines.
	reg.Register(ast.KindText, r.renderText)
	reg.Register(ast.KindString, r.renderString)
	reg.Register(ast.KindEmphasis, r.renderEmphasis)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)

	// GFM.
	reg.Register(east.KindStrikethrough, r.renderStrikethrough)
	reg.Register(east.KindTaskCheckBox, r.renderTaskCheckBox)
	reg.Register(east.KindTable, r.renderTable)
	reg.Register(east.KindTableHeader, r.renderTableRow)
	reg.Register(east.KindTableRow, r.renderTableRow)
	reg.Register(east.KindTableCell, r.renderTableCell)
}

func write(w util.BufWriter, s string) {
	_, _ = w.WriteString(s)
}

// endBlock terminates a block and separates it from a following sibling
// with a blank line, except inside lists where items stay tight.
func endBlock(w util.BufWriter, n ast.Node) {
	write(w, "\n")
	if n.NextSibling() == nil {
		return
	}
	if parent := n.Parent(); parent != nil && parent.Kind() == ast.KindListItem {
		return
	}
	write(w, "\n")
}

func (r *Renderer) renderNothing(util.BufWriter, []byte, ast.Node, bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

func (r *Renderer) renderHeading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	tags, ok := headingTags[n.Level]
	if !ok {
		tags = [2]string{"[b]", "[/b]"}
	}
	if entering {
		write(w, tags[0])
		return ast.WalkContinue, nil
	}
	write(w, tags[1])
	endBlock(w, node)
	return ast.WalkContinue, nil
}

func (r *Renderer) renderParagraph(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		endBlock(w, node)
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderTextBlock(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		endBlock(w, node)
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderBlockquote(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		write(w, "[quote]")
		return ast.WalkContinue, nil
	}
	write(w, "[/quote]")
	endBlock(w, node)
	return ast.WalkContinue, nil
}

func (r *Renderer) renderList(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	if entering {
		if n.IsOrdered() {
			start := n.Start
			if start == 0 {
				start = 1
			}
			write(w, "[list="+strconv.Itoa(start)+"]\n")
		} else {
			write(w, "[list]\n")
		}
		return ast.WalkContinue, nil
	}
	write(w, "[/list]")
	endBlock(w, node)
	return ast.WalkContinue, nil
}

func (r *Renderer) renderListItem(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		write(w, "[*]")
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	write(w, "[code]")
	lines := node.Lines()
	for idx := range lines.Len() {
		line := lines.At(idx)
		_, _ = w.Write(line.Value(source))
	}
	write(w, "[/code]")
	endBlock(w, node)
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderThematicBreak(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		write(w, "[hr]")
		endBlock(w, node)
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.HTMLBlock)
	if !entering {
		return ast.WalkContinue, nil
	}

	lines := n.Lines()
	for idx := range lines.Len() {
		line := lines.At(idx)
		_, _ = w.Write(line.Value(source))
	}
	if n.HasClosure() {
		_, _ = w.Write(n.ClosureLine.Value(source))
	}
	if n.NextSibling() != nil {
		write(w, "\n")
	}
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderText(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.Text)
	_, _ = w.Write(n.Segment.Value(source))
	if n.HardLineBreak() || n.SoftLineBreak() {
		write(w, "\n")
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderString(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(node.(*ast.String).Value)
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderEmphasis(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	tag := "i"
	if node.(*ast.Emphasis).Level >= 2 {
		tag = "b"
	}
	if entering {
		write(w, "["+tag+"]")
	} else {
		write(w, "[/"+tag+"]")
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderCodeSpan(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		write(w, "[font=monospace]")
	} else {
		write(w, "[/font]")
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		write(w, "[url="+string(node.(*ast.Link).Destination)+"]")
	} else {
		write(w, "[/url]")
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.AutoLink)
	tag := "url"
	if n.AutoLinkType == ast.AutoLinkEmail {
		tag = "email"
	}
	write(w, "["+tag+"]"+string(n.Label(source))+"[/"+tag+"]")
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderImage(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		write(w, "[img]"+string(node.(*ast.Image).Destination)+"[/img]")
	}
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}

	segments := node.(*ast.RawHTML).Segments
	for idx := range segments.Len() {
		segment := segments.At(idx)
		_, _ = w.Write(segment.Value(source))
	}
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderStrikethrough(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		write(w, "[s]")
	} else {
		write(w, "[/s]")
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderTaskCheckBox(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	if node.(*east.TaskCheckBox).IsChecked {
		write(w, "[x] ")
	} else {
		write(w, "[ ] ")
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderTable(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		write(w, "[table]\n")
		return ast.WalkContinue, nil
	}
	write(w, "[/table]")
	endBlock(w, node)
	return ast.WalkContinue, nil
}

func (r *Renderer) renderTableRow(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		write(w, "[tr]")
	} else {
		write(w, "[/tr]\n")
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderTableCell(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	tag := "td"
	if node.Parent() != nil && node.Parent().Kind() == east.KindTableHeader {
		tag = "th"
	}
	if entering {
		write(w, "["+tag+"]")
	} else {
		write(w, "[/"+tag+"]")
	}
	return ast.WalkContinue, nil
}
