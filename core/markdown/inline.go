package markdown

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/pagemd/core/dom"
)

var (
	newlineRun = regexp.MustCompile(`\s*\n\s*`)
	spaceRun   = regexp.MustCompile(` {2,}`)
)

// allowedSchemes are the link schemes that survive sanitization. The empty
// scheme covers relative and protocol-relative references.
var allowedSchemes = map[string]bool{
	"":      true,
	"http":  true,
	"https": true,
	"file":  true,
}

// SafeURL validates href against the link scheme allowlist and returns it
// with its path re-encoded. A "%" that does not start a valid escape is
// taken literally and encoded as "%25". ok is false for rejected schemes and
// for URLs that still cannot be parsed, such as a malformed host.
func SafeURL(href string) (string, bool) {
	u, err := url.Parse(escapeStrayPercent(strings.TrimSpace(href)))
	if err != nil {
		return "", false
	}
	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return "", false
	}
	// Path is already decoded; dropping RawPath forces a fresh encoding.
	u.RawPath = ""
	return u.String(), true
}

// escapeStrayPercent rewrites every "%" not followed by two hex digits as
// "%25", leaving valid escapes untouched.
func escapeStrayPercent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func renderLink(e *dom.Element, ctx Context) string {
	text := renderChildren(e, ctx)
	if strings.TrimSpace(text) == "" {
		return ""
	}
	text = strings.TrimSpace(text)
	text = newlineRun.ReplaceAllString(text, " ")
	text = spaceRun.ReplaceAllString(text, " ")

	href, ok := e.Attr("href")
	if !ok {
		return text
	}
	dest, ok := SafeURL(href)
	if !ok {
		return text
	}

	if title, ok := e.Attr("title"); ok && title != "" {
		return "[" + text + "](" + dest + ` "` + escapeTitle(title) + `")`
	}
	return "[" + text + "](" + dest + ")"
}

func renderImage(e *dom.Element, ctx Context) string {
	alt := e.AttrOr("alt", "")
	src := e.AttrOr("src", "")
	title := e.AttrOr("title", "")

	if !ctx.KeepDataURIs && isDataURI(src) {
		if i := strings.IndexByte(src, ','); i >= 0 {
			src = src[:i] + "..."
		}
	}

	if title != "" {
		return "![" + alt + "](" + src + ` "` + escapeTitle(title) + `")`
	}
	return "![" + alt + "](" + src + ")"
}

func isDataURI(src string) bool {
	return len(src) >= 5 && strings.EqualFold(src[:5], "data:")
}

func escapeTitle(title string) string {
	return strings.ReplaceAll(title, `"`, `\"`)
}

func renderBold(e *dom.Element, ctx Context) string {
	return "**" + renderChildren(e, ctx) + "**"
}

func renderItalic(e *dom.Element, ctx Context) string {
	return "*" + renderChildren(e, ctx) + "*"
}

func renderStrikethrough(e *dom.Element, ctx Context) string {
	return "~~" + renderChildren(e, ctx) + "~~"
}

func renderInlineCode(e *dom.Element, ctx Context) string {
	return "`" + renderChildren(e, ctx) + "`"
}
