package alerts

import (
	"strings"
	"testing"
	"time"
)

func Test_Render_Markup(t *testing.T) {
	n := Notification{ID: "n1", Message: "<b>Saved</b>", Category: CategorySuccess, CreatedAt: time.Now()}

	got, err := Render(n)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		`class="alert alert-success alert-dismissible`,
		`data-alert-id="n1"`,
		`<p class="m-0 mr-4"><b>Saved</b></p>`,
		`data-dismiss="alert"`,
		`<i data-feather="x"></i>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markup missing %q:\n%s", want, got)
		}
	}
}

func Test_Render_EscapesAttributes(t *testing.T) {
	got, err := Render(Notification{ID: `a"b`, Message: "m", Category: `x" onclick="y`})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(got, `onclick="y"`) {
		t.Errorf("category was not escaped:\n%s", got)
	}
	if strings.Contains(got, `data-alert-id="a"b"`) {
		t.Errorf("id was not escaped:\n%s", got)
	}
}

func Test_MarkupContainer_Selector_Cases(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		wantSel  string
		wantOpen string
	}{
		{name: "empty defaults", selector: "", wantSel: "#alerts", wantOpen: `<div id="alerts">`},
		{name: "id selector", selector: "#flash", wantSel: "#flash", wantOpen: `<div id="flash">`},
		{name: "class selector", selector: ".toast-area", wantSel: ".toast-area", wantOpen: `<div class="toast-area">`},
		{name: "bare name is an id", selector: "messages", wantSel: "messages", wantOpen: `<div id="messages">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewMarkupContainer(tt.selector)
			if c.Selector() != tt.wantSel {
				t.Errorf("Selector() = %q, want %q", c.Selector(), tt.wantSel)
			}
			if got := c.HTML(); got != tt.wantOpen+"</div>" {
				t.Errorf("HTML() = %q, want %q", got, tt.wantOpen+"</div>")
			}
		})
	}
}

func Test_MarkupContainer_AppendRemove(t *testing.T) {
	c := NewMarkupContainer("#alerts")
	c.Append("a", "<p>a</p>")
	c.Append("b", "<p>b</p>")
	c.Append("c", "<p>c</p>")

	c.Remove("b", "missing")
	if got := c.IDs(); !equalStrings(got, []string{"a", "c"}) {
		t.Errorf("IDs() = %v, want [a c]", got)
	}

	want := "<div id=\"alerts\"><p>a</p>\n<p>c</p>\n</div>"
	if got := c.HTML(); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}

	c.Remove()
	if c.Len() != 2 {
		t.Errorf("Len() = %d after empty Remove, want 2", c.Len())
	}

	c.Remove("a", "c")
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func Test_MarkupContainer_Transform(t *testing.T) {
	c := NewMarkupContainer("#alerts")
	c.Append("a", "one")
	c.Append("b", "two")

	c.Transform(strings.ToUpper)

	want := "<div id=\"alerts\">ONE\nTWO\n</div>"
	if got := c.HTML(); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}
