package htmltext

import (
	"strings"
	"testing"
)

func TestStripTags(t *testing.T) {
	html := `<html><body>
	<p>Name of Issuer: <b>Target Corporation</b></p>
	<div>Percent of Class: 8.5%</div>
	<script>ignore()</script>
	</body></html>`

	text := Strip(html)

	if strings.Contains(text, "<") {
		t.Errorf("markup survived stripping: %q", text)
	}
	if !strings.Contains(text, "Name of Issuer: Target Corporation") {
		t.Errorf("inline text lost: %q", text)
	}
	if !strings.Contains(text, "Percent of Class: 8.5%") {
		t.Errorf("div text lost: %q", text)
	}
	if strings.Contains(text, "ignore()") {
		t.Error("script content should be removed")
	}
}

func TestStripKeepsBlockBoundaries(t *testing.T) {
	html := `<p>Sole Voting Power: 15,000,000</p><p>Shared Voting Power: 0</p>`
	text := Strip(html)
	if !strings.Contains(text, "\n") {
		t.Errorf("expected newline between blocks, got %q", text)
	}
}

func TestStripPlainTextPassthrough(t *testing.T) {
	in := "Line one\n\n\n\nLine   two"
	got := Strip(in)
	want := "Line one\n\nLine two"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
