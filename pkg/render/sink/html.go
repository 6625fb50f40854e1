package sink

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// HTMLOption configures rendering via [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	fragment bool
	lang     string
}

// WithFragment omits the document shell and renders only the template container.
func WithFragment() HTMLOption { return func(r *htmlRenderer) { r.fragment = true } }

// WithLang sets the lang attribute of the html element. Defaults to "en".
func WithLang(lang string) HTMLOption { return func(r *htmlRenderer) { r.lang = lang } }

// RenderHTML serializes doc to HTML.
func RenderHTML(doc *document.Document, opts ...HTMLOption) []byte {
	r := htmlRenderer{lang: "en"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if !r.fragment {
		renderHead(&buf, doc, r.lang)
	}

	fmt.Fprintf(&buf, "<div class=\"template\" style=\"max-width: %s; margin: 0 auto\">\n", attr(doc.Canvas.Width))
	for _, s := range doc.Template.Sections {
		renderSection(&buf, s)
	}
	buf.WriteString("</div>\n")

	if !r.fragment {
		buf.WriteString("</body>\n</html>\n")
	}
	return buf.Bytes()
}

// Filename derives an export file name from a template name:
// "Spring Sale" becomes "spring-sale.html".
func Filename(name string) string {
	base := strings.Join(strings.Fields(strings.ToLower(name)), "-")
	if base == "" {
		base = "template"
	}
	return base + ".html"
}

func renderHead(buf *bytes.Buffer, doc *document.Document, lang string) {
	buf.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(buf, "<html lang=\"%s\">\n", attr(lang))
	buf.WriteString("<head>\n")
	buf.WriteString("<meta charset=\"utf-8\">\n")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(buf, "<title>%s</title>\n", text(doc.Template.Name))
	buf.WriteString("</head>\n<body>\n")
	fmt.Fprintf(buf, "<!-- template: %s -->\n", comment(doc.Template.ID))
}

// =============================================================================
// Structure
// =============================================================================

func renderSection(buf *bytes.Buffer, s document.Section) {
	fmt.Fprintf(buf, "  <div class=\"section\" data-id=\"%s\" style=\"display: flex\">\n", attr(s.ID))
	width := columnWidth(len(s.Components))
	for i, col := range s.Components {
		fmt.Fprintf(buf, "    <div class=\"column\" data-column=\"%d\" style=\"width: %s\">\n", i, width)
		for _, c := range col {
			buf.WriteString("      ")
			renderComponent(buf, c)
			buf.WriteByte('\n')
		}
		buf.WriteString("    </div>\n")
	}
	buf.WriteString("  </div>\n")
}

// columnWidth returns 100/n percent with up to four decimals.
func columnWidth(n int) string {
	if n < 1 {
		n = 1
	}
	w := strconv.FormatFloat(100/float64(n), 'f', 4, 64)
	w = strings.TrimRight(strings.TrimRight(w, "0"), ".")
	return w + "%"
}

// =============================================================================
// Components
// =============================================================================

func renderComponent(buf *bytes.Buffer, c document.Component) {
	p := c.Properties
	switch c.Kind {
	case document.KindHeading:
		level := p.HeadingLevel()
		fmt.Fprintf(buf, "<%s%s>%s</%s>", level, commonAttrs(c), text(c.Content), level)
	case document.KindParagraph:
		fmt.Fprintf(buf, "<p%s>%s</p>", commonAttrs(c), text(c.Content))
	case document.KindImage:
		fmt.Fprintf(buf, "<img%s src=\"%s\" alt=\"%s\">",
			commonAttrs(c), attr(safeURL(firstNonEmpty(p.Src, c.Content))), attr(p.AltText))
	case document.KindButton:
		if p.URL != "" {
			fmt.Fprintf(buf, "<a href=\"%s\"><button%s>%s</button></a>", attr(safeURL(p.URL)), commonAttrs(c), text(c.Content))
		} else {
			fmt.Fprintf(buf, "<button%s>%s</button>", commonAttrs(c), text(c.Content))
		}
	case document.KindVideo:
		renderVideo(buf, c)
	case document.KindTimer:
		fmt.Fprintf(buf, "<div%s data-end-date=\"%s\" data-format=\"%s\">%s</div>",
			commonAttrs(c), attr(p.EndDate), attr(p.Format), text(p.EndDate))
	case document.KindMenu:
		renderMenu(buf, c)
	case document.KindSocial, document.KindSocialShare:
		renderSocial(buf, c)
	case document.KindHeader:
		fmt.Fprintf(buf, "<header%s>%s</header>", commonAttrs(c), text(c.Content))
	case document.KindFooter:
		fmt.Fprintf(buf, "<footer%s>%s</footer>", commonAttrs(c), text(c.Content))
	case document.KindDivider:
		fmt.Fprintf(buf, "<hr%s>", commonAttrs(c))
	case document.KindHTML:
		fmt.Fprintf(buf, "<div%s>%s</div>", commonAttrs(c), c.Content)
	default:
		fmt.Fprintf(buf, "<div%s>%s</div>", commonAttrs(c), text(c.Content))
	}
}

func renderVideo(buf *bytes.Buffer, c document.Component) {
	p := c.Properties
	fmt.Fprintf(buf, "<video%s src=\"%s\"", commonAttrs(c), attr(safeURL(firstNonEmpty(p.Src, c.Content))))
	if p.Poster != "" {
		fmt.Fprintf(buf, " poster=\"%s\"", attr(safeURL(p.Poster)))
	}
	if p.Preload != "" {
		fmt.Fprintf(buf, " preload=\"%s\"", attr(p.Preload))
	}
	for _, f := range []struct {
		name string
		on   bool
	}{
		{"controls", p.Controls},
		{"autoplay", p.Autoplay},
		{"loop", p.Loop},
		{"muted", p.Muted},
		{"playsinline", p.PlaysInline},
	} {
		if f.on {
			buf.WriteString(" " + f.name)
		}
	}
	buf.WriteString("></video>")
}

func renderMenu(buf *bytes.Buffer, c document.Component) {
	fmt.Fprintf(buf, "<ul%s>", commonAttrs(c))
	for _, item := range c.Properties.MenuItems {
		fmt.Fprintf(buf, "<li><a href=\"%s\">%s</a></li>", attr(safeURL(item.URL)), text(item.Text))
	}
	buf.WriteString("</ul>")
}

func renderSocial(buf *bytes.Buffer, c document.Component) {
	fmt.Fprintf(buf, "<div%s>", commonAttrs(c))
	for _, link := range c.Properties.SocialMedia {
		if !link.Enabled {
			continue
		}
		n := networkFor(link.Type)
		fmt.Fprintf(buf, "<a href=\"%s\" data-network=\"%s\" title=\"%s\" style=\"color: %s\">%s</a>",
			attr(safeURL(link.URL)), attr(link.Type), attr(n.label), n.color, n.glyph)
	}
	buf.WriteString("</div>")
}

type network struct {
	label string
	color string
	glyph string
}

var networks = map[string]network{
	"facebook":  {"Facebook", "#1877F2", "f"},
	"twitter":   {"Twitter", "#1DA1F2", "&#120143;"},
	"instagram": {"Instagram", "#E4405F", "&#9678;"},
	"linkedin":  {"LinkedIn", "#0A66C2", "in"},
	"youtube":   {"YouTube", "#FF0000", "&#9654;"},
	"pinterest": {"Pinterest", "#BD081C", "P"},
}

func networkFor(kind string) network {
	if n, ok := networks[strings.ToLower(kind)]; ok {
		return n
	}
	return network{label: kind, color: "#1976d2", glyph: "&#8226;"}
}

// =============================================================================
// Attributes
// =============================================================================

// commonAttrs renders the data attributes and inline style every element carries.
func commonAttrs(c document.Component) string {
	s := fmt.Sprintf(" data-id=\"%s\" data-kind=\"%s\"", attr(c.ID), attr(string(c.Kind)))
	if style := InlineStyle(c.Style); style != "" {
		s += " style=\"" + attr(style) + "\""
	}
	return s
}

var unsafeCSS = []string{"javascript:", "expression(", "@import", "behavior:", "-moz-binding"}

// cssProperty matches a property name, custom properties included. Anything
// else (";", ":", braces, quotes) could open a second declaration.
var cssProperty = regexp.MustCompile(`^-{0,2}[A-Za-z][A-Za-z0-9-]*$`)

// InlineStyle flattens a style map to CSS declarations in insertion order.
// Declarations with a malformed key or a script-bearing value are dropped.
func InlineStyle(s document.Style) string {
	var decls []string
	s.Each(func(k, v string) {
		if !cssProperty.MatchString(k) || unsafeCSSValue(v) {
			return
		}
		decls = append(decls, KebabCase(k)+": "+v)
	})
	return strings.Join(decls, "; ")
}

func unsafeCSSValue(v string) bool {
	lv := strings.ToLower(v)
	for _, bad := range unsafeCSS {
		if strings.Contains(lv, bad) {
			return true
		}
	}
	return false
}

var (
	matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

// KebabCase converts a camelCase style key to its CSS spelling:
// "backgroundColor" becomes "background-color". Keys already in kebab-case
// are returned unchanged.
func KebabCase(key string) string {
	k := matchFirstCap.ReplaceAllString(key, "${1}-${2}")
	k = matchAllCap.ReplaceAllString(k, "${1}-${2}")
	return strings.ToLower(k)
}

// safeURL returns u unless its scheme could run script, in which case it
// returns "#". Relative paths and cid: references pass through.
func safeURL(u string) string {
	if strings.TrimSpace(u) == "" {
		return ""
	}
	if errors.ValidateURL(u) != nil {
		return "#"
	}
	return u
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func text(s string) string { return html.EscapeString(s) }

func attr(s string) string { return html.EscapeString(s) }

// comment makes s safe inside an HTML comment.
func comment(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return html.EscapeString(s)
}
