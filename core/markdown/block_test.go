package markdown

import (
	"strings"
	"testing"
)

func TestRenderParagraph(t *testing.T) {
	if got := render(t, `<p>  Hi there  </p>`); got != "\n\nHi there\n" {
		t.Errorf("expected %q, got %q", "\n\nHi there\n", got)
	}
}

func TestRenderLineBreakAndRule(t *testing.T) {
	if got := render(t, `<p>a<br>b</p>`); got != "\n\na  \nb\n" {
		t.Errorf("expected hard break, got %q", got)
	}
	if got := render(t, `<hr>`); got != "\n\n---\n\n" {
		t.Errorf("expected rule, got %q", got)
	}
}

func TestRenderUnorderedList(t *testing.T) {
	got := render(t, `<ul><li>One</li><li> Two </li></ul>`)
	want := "\n- One\n- Two\n\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderOrderedList_IgnoresNonItems(t *testing.T) {
	list := el("ol",
		txt("\n  "),
		el("li", txt("First")),
		txt("stray"),
		el("p", txt("also stray")),
		el("li", txt("Second")),
	)
	got := Render(list, NewContext(Options{}))
	want := "\n1. First\n2. Second\n\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderList_NestedSeparatedByBlankLine(t *testing.T) {
	got := render(t, `<ul><li>A<ul><li>B</li></ul></li><li>C</li></ul>`)
	want := "\n- A\n\n- B\n\n- C\n\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderList_NestedOrderedRestartsNumbering(t *testing.T) {
	got := Convert(fragment(t, `<ol><li>one<ol><li>inner</li><li>inner2</li></ol></li><li>two</li></ol>`), Options{})
	want := "1. one\n\n1. inner\n2. inner2\n\n2. two\n\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderListItem_OutsideList(t *testing.T) {
	if got := Render(el("li", txt(" lone ")), NewContext(Options{})); got != "- lone\n" {
		t.Errorf("expected %q, got %q", "- lone\n", got)
	}
}

func TestRenderBlockquote(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"single", `<blockquote>Quote</blockquote>`, "\n> Quote\n"},
		{"paragraphs", `<blockquote><p>A</p><p>B</p></blockquote>`, "\n> A\n>\n> B\n"},
		{"lines", "<blockquote>line one\n      line two</blockquote>", "\n> line one\n> line two\n"},
		{"empty", `<blockquote>  <p></p> </blockquote>`, ""},
	}
	for _, tt := range tests {
		if got := render(t, tt.src); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestRenderBlockquote_KeepsCodeIndentation(t *testing.T) {
	got := render(t, "<blockquote><pre><code>if x {\n    y()\n}</code></pre></blockquote>")
	want := "\n> ```\n> if x {\n>     y()\n> }\n> ```\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	got = render(t, "<blockquote><pre><code>x\n    a\n\n\n    b</code></pre></blockquote>")
	want = "\n> ```\n> x\n>     a\n>\n>\n>     b\n> ```\n"
	if got != want {
		t.Errorf("blank lines in code: expected %q, got %q", want, got)
	}

	got = render(t, "<blockquote><p>Before</p><pre><code>a\n\n    b</code></pre><p>  After</p></blockquote>")
	want = "\n> Before\n>\n> ```\n> a\n>\n>     b\n> ```\n>\n> After\n"
	if got != want {
		t.Errorf("mixed quote: expected %q, got %q", want, got)
	}
}

func TestRenderDefinitionList(t *testing.T) {
	got := Convert(fragment(t, `<dl><dt> Term </dt><dd> Meaning </dd><span>dropped</span><dt>Other</dt><dd>Thing</dd></dl>`), Options{})
	want := "**Term**\n: Meaning\n\n**Other**\n: Thing\n\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if strings.Contains(got, "dropped") {
		t.Errorf("expected non dt/dd children to be dropped, got %q", got)
	}
}
