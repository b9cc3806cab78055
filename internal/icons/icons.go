// Package icons replaces icon placeholders in rendered markup with inline SVG
// glyphs, the way the page's feather script does.
//
// A placeholder is an <i> element carrying a data-feather attribute naming the
// glyph. Replacement is a one-time scan, so markup inserted later must be
// scanned again; scanning already-replaced markup leaves it unchanged.
package icons

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// DefaultSize is the glyph width and height used across the page.
const DefaultSize = 16

// Replacer rewrites icon placeholders in an HTML fragment.
type Replacer interface {
	Replace(markup string) (string, error)
}

// Feather replaces data-feather placeholders with fixed-size inline SVG.
// Placeholders naming an unknown glyph are left untouched.
type Feather struct {
	Width  int
	Height int
}

// NewFeather returns a Feather that renders glyphs at size×size. A
// non-positive size means DefaultSize.
func NewFeather(size int) *Feather {
	if size <= 0 {
		size = DefaultSize
	}
	return &Feather{Width: size, Height: size}
}

// Replace scans markup and substitutes every known placeholder.
func (f *Feather) Replace(markup string) (string, error) {
	if !strings.Contains(markup, "data-feather") {
		return markup, nil
	}

	var out bytes.Buffer
	z := html.NewTokenizer(strings.NewReader(markup))
	// depth > 0 while skipping the children of a replaced placeholder; inner
	// counts other elements opened inside it. Skipped tokens are kept in case
	// the placeholder turns out to be unclosed.
	depth, inner := 0, 0
	var skipped bytes.Buffer

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("icons: tokenize: %w", err)
			}
			out.Write(skipped.Bytes())
			return out.String(), nil
		}

		// TagName lower-cases the token buffer in place, so copy first.
		raw := append([]byte(nil), z.Raw()...)

		if depth > 0 {
			skipped.Write(raw)
			switch tt {
			case html.StartTagToken:
				name, _ := z.TagName()
				switch {
				case string(name) == "i":
					depth++
				case !voidElements[string(name)]:
					inner++
				}
			case html.EndTagToken:
				name, _ := z.TagName()
				switch {
				case string(name) == "i":
					depth--
					if depth == 0 {
						skipped.Reset()
						inner = 0
					}
				case inner > 0:
					inner--
				default:
					// The enclosing element closed first: the placeholder was
					// never closed, so its content belongs to the parent.
					out.Write(skipped.Bytes())
					skipped.Reset()
					depth = 0
				}
			}
			continue
		}

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			out.Write(raw)
			continue
		}

		name, hasAttr := z.TagName()
		if string(name) != "i" || !hasAttr {
			out.Write(raw)
			continue
		}

		attrs := readAttrs(z)
		glyph, ok := glyphs[attrs.get("data-feather")]
		if !ok {
			out.Write(raw)
			continue
		}

		f.writeSVG(&out, attrs.get("data-feather"), glyph, attrs)
		if tt == html.StartTagToken {
			depth = 1
		}
	}
}

func (f *Feather) writeSVG(out *bytes.Buffer, name, glyph string, attrs attrList) {
	w, h := f.Width, f.Height
	if w <= 0 {
		w = DefaultSize
	}
	if h <= 0 {
		h = DefaultSize
	}

	class := "feather feather-" + name
	if extra := attrs.get("class"); extra != "" {
		class += " " + extra
	}

	out.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="`)
	out.WriteString(strconv.Itoa(w))
	out.WriteString(`" height="`)
	out.WriteString(strconv.Itoa(h))
	out.WriteString(`" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="`)
	out.WriteString(html.EscapeString(class))
	out.WriteByte('"')
	for _, a := range attrs {
		if a.key == "data-feather" || a.key == "class" {
			continue
		}
		out.WriteByte(' ')
		out.WriteString(a.key)
		out.WriteString(`="`)
		out.WriteString(html.EscapeString(a.val))
		out.WriteByte('"')
	}
	out.WriteByte('>')
	out.WriteString(glyph)
	out.WriteString("</svg>")
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

type attr struct{ key, val string }

type attrList []attr

func (l attrList) get(key string) string {
	for _, a := range l {
		if a.key == key {
			return a.val
		}
	}
	return ""
}

func readAttrs(z *html.Tokenizer) attrList {
	var l attrList
	for {
		k, v, more := z.TagAttr()
		l = append(l, attr{key: string(k), val: string(v)})
		if !more {
			return l
		}
	}
}

// glyphs holds the SVG bodies of the icons the page uses.
var glyphs = map[string]string{
	"x":              `<line x1="18" y1="6" x2="6" y2="18"></line><line x1="6" y1="6" x2="18" y2="18"></line>`,
	"check":          `<polyline points="20 6 9 17 4 12"></polyline>`,
	"info":           `<circle cx="12" cy="12" r="10"></circle><line x1="12" y1="16" x2="12" y2="12"></line><line x1="12" y1="8" x2="12.01" y2="8"></line>`,
	"alert-triangle": `<path d="M10.29 3.86L1.82 18a2 2 0 0 0 1.71 3h16.94a2 2 0 0 0 1.71-3L13.71 3.86a2 2 0 0 0-3.42 0z"></path><line x1="12" y1="9" x2="12" y2="13"></line><line x1="12" y1="17" x2="12.01" y2="17"></line>`,
	"chevron-down":   `<polyline points="6 9 12 15 18 9"></polyline>`,
	"chevron-up":     `<polyline points="18 15 12 9 6 15"></polyline>`,
	"plus":           `<line x1="12" y1="5" x2="12" y2="19"></line><line x1="5" y1="12" x2="19" y2="12"></line>`,
	"trash-2":        `<polyline points="3 6 5 6 21 6"></polyline><path d="M19 6v14a2 2 0 0 1-2 2H7a2 2 0 0 1-2-2V6m3 0V4a2 2 0 0 1 2-2h4a2 2 0 0 1 2 2v2"></path><line x1="10" y1="11" x2="10" y2="17"></line><line x1="14" y1="11" x2="14" y2="17"></line>`,
}

// Known reports whether name is a glyph Feather can render.
func Known(name string) bool {
	_, ok := glyphs[name]
	return ok
}
