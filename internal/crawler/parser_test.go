package crawler

import (
	"slices"
	"strings"
	"testing"
)

func TestParserParse(t *testing.T) {
	t.Parallel()

	const doc = `<!DOCTYPE html>
<html>
<head>
<meta name="description" content="A quaint little site">
<meta charset="utf-8">
<style>.hidden { display: none; }</style>
<title>Welcome</title>
</head>
<body>
<script>var secret = "donotextract";</script>
<p>Hello visitors</p>
<a href="/about">About us</a>
<a href="https://example.com/contact">Contact</a>
<a href="mailto:Info@Example.com">Mail us</a>
<a href="  /trimmed  ">Trimmed</a>
<a>No href</a>
<p>Write to admin@example.com today</p>
</body>
</html>`

	parser := NewParser()
	got, err := parser.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	text := got.VisibleText()
	for _, want := range []string{"Welcome", "Hello visitors", "About us", "Contact"} {
		if !strings.Contains(text, want) {
			t.Errorf("VisibleText() missing %q: %q", want, text)
		}
	}
	for _, banned := range []string{"donotextract", "display", "hidden"} {
		if strings.Contains(text, banned) {
			t.Errorf("VisibleText() leaked script/style content %q: %q", banned, text)
		}
	}

	wantHrefs := []string{"/about", "https://example.com/contact", "mailto:Info@Example.com", "/trimmed"}
	if !slices.Equal(got.Hrefs, wantHrefs) {
		t.Errorf("Hrefs = %v, want %v", got.Hrefs, wantHrefs)
	}

	wantMeta := []string{"A quaint little site"}
	if !slices.Equal(got.MetaContents, wantMeta) {
		t.Errorf("MetaContents = %v, want %v", got.MetaContents, wantMeta)
	}

	// The mailto address lives only in an attribute; raw-document
	// scanning must still find it, lowercased and deduplicated.
	wantEmails := []string{"info@example.com", "admin@example.com"}
	if !slices.Equal(got.Emails, wantEmails) {
		t.Errorf("Emails = %v, want %v", got.Emails, wantEmails)
	}
}

func TestParserParseMalformedHTML(t *testing.T) {
	t.Parallel()

	// Unclosed tags and stray brackets must still yield partial content.
	const doc = `<html><body><p>broken <a href="/next">link<p>more text`

	got, err := NewParser().Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !strings.Contains(got.VisibleText(), "more text") {
		t.Errorf("VisibleText() = %q, want it to contain %q", got.VisibleText(), "more text")
	}
	if want := []string{"/next"}; !slices.Equal(got.Hrefs, want) {
		t.Errorf("Hrefs = %v, want %v", got.Hrefs, want)
	}
}

func TestParserParseEmpty(t *testing.T) {
	t.Parallel()

	got, err := NewParser().Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.VisibleText() != "" {
		t.Errorf("VisibleText() = %q, want empty", got.VisibleText())
	}
	if len(got.Hrefs) != 0 || len(got.Emails) != 0 {
		t.Errorf("got hrefs %v, emails %v, want none", got.Hrefs, got.Emails)
	}
}

func TestExtractEmails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain address",
			text: "reach me at jane.doe@example.org please",
			want: []string{"jane.doe@example.org"},
		},
		{
			name: "lowercases and deduplicates",
			text: "Admin@Example.com admin@example.com",
			want: []string{"admin@example.com"},
		},
		{
			name: "plus and percent in local part",
			text: "user+tag@example.com a%b@example.co.uk",
			want: []string{"user+tag@example.com", "a%b@example.co.uk"},
		},
		{
			name: "rejects single-letter TLD",
			text: "not-an-email@host.x",
			want: []string{},
		},
		{
			name: "no addresses",
			text: "nothing to see here",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := extractEmails(tt.text); !slices.Equal(got, tt.want) {
				t.Errorf("extractEmails(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
