package icons

import (
	"strings"
	"testing"
)

// Compile-time interface check.
var _ Replacer = (*Feather)(nil)

func Test_Feather_Replace_Cases(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		input    string
		contains []string
		absent   []string
		exact    string
	}{
		{
			name:     "close icon becomes 16x16 svg",
			input:    `<button type="button"><i data-feather="x"></i></button>`,
			contains: []string{`<button type="button"><svg `, `width="16"`, `height="16"`, `class="feather feather-x"`, `<line x1="18" y1="6" x2="6" y2="18"></line>`, `</svg></button>`},
			absent:   []string{"<i", "data-feather"},
		},
		{
			name:     "custom size",
			size:     24,
			input:    `<i data-feather="check"></i>`,
			contains: []string{`width="24"`, `height="24"`, `feather-check`},
		},
		{
			name:     "existing class and attributes are carried over",
			input:    `<i data-feather="info" class="text-muted" title="more"></i>`,
			contains: []string{`class="feather feather-info text-muted"`, `title="more"`},
		},
		{
			name:     "self closing placeholder",
			input:    `<p>a<i data-feather="plus"/>b</p>`,
			contains: []string{`<p>a<svg `, `</svg>b</p>`},
		},
		{
			name:  "unknown glyph left untouched",
			input: `<i data-feather="no-such-icon"></i>`,
			exact: `<i data-feather="no-such-icon"></i>`,
		},
		{
			name:  "markup without placeholders is unchanged",
			input: `<div class="alert"><p>Saved &amp; done</p></div>`,
			exact: `<div class="alert"><p>Saved &amp; done</p></div>`,
		},
		{
			name:  "plain italic is unchanged",
			input: `<p><i>emphasis</i> data-feather</p>`,
			exact: `<p><i>emphasis</i> data-feather</p>`,
		},
		{
			name:     "unclosed placeholder keeps the rest of the alert",
			input:    `<div class="alert"><p><i data-feather="check">done</p><button><i data-feather="x"></i></button></div>`,
			contains: []string{"feather-check", `</svg>done</p><button><svg `, "feather-x", `</svg></button></div>`},
			absent:   []string{"data-feather"},
		},
		{
			name:     "unclosed placeholder at end of input",
			input:    `<p>a</p><i data-feather="plus"><b>tail</b>`,
			contains: []string{`<p>a</p><svg `, `</svg><b>tail</b>`},
		},
		{
			name:     "placeholder with element children",
			input:    `<i data-feather="x"><span>old</span></i><em>after</em>`,
			contains: []string{`</svg><em>after</em>`},
			absent:   []string{"old"},
		},
		{
			name:     "multiple placeholders",
			input:    `<i data-feather="x"></i><span>mid</span><i data-feather="check"></i>`,
			contains: []string{"feather-x", "<span>mid</span>", "feather-check"},
			absent:   []string{"data-feather"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFeather(tt.size).Replace(tt.input)
			if err != nil {
				t.Fatalf("Replace: %v", err)
			}
			if tt.exact != "" && got != tt.exact {
				t.Errorf("Replace() = %q, want %q", got, tt.exact)
			}
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Replace() = %q, want it to contain %q", got, s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(got, s) {
					t.Errorf("Replace() = %q, want it not to contain %q", got, s)
				}
			}
		})
	}
}

func Test_Feather_Replace_Idempotent(t *testing.T) {
	f := NewFeather(0)
	once, err := f.Replace(`<div><i data-feather="x"></i></div>`)
	if err != nil {
		t.Fatalf("first Replace: %v", err)
	}
	twice, err := f.Replace(once)
	if err != nil {
		t.Fatalf("second Replace: %v", err)
	}
	if once != twice {
		t.Errorf("second pass changed markup:\nfirst:  %q\nsecond: %q", once, twice)
	}
}

func Test_NewFeather_DefaultSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		f := NewFeather(size)
		if f.Width != DefaultSize || f.Height != DefaultSize {
			t.Errorf("NewFeather(%d) = %dx%d, want %dx%d", size, f.Width, f.Height, DefaultSize, DefaultSize)
		}
	}
}

func Test_Known(t *testing.T) {
	if !Known("x") {
		t.Error(`Known("x") = false, want true`)
	}
	if Known("definitely-not-a-glyph") {
		t.Error("Known(unknown) = true, want false")
	}
}
