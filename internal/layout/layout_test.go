package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultLayoutPlaceholders(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)
	for _, tok := range []string{"{{title}}", "{{content}}", "{{footer}}", "{{imageUrl}}", "{{buttonText}}", "{{buttonUrl}}", "{% if hasButton %}"} {
		require.Contains(t, l.Raw(), tok)
	}
}

func TestExecuteSubstitutesFields(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)
	out, err := l.Execute(Fields{Title: "Hi", Content: "<p>Body</p>", Footer: "Bye"})
	require.NoError(t, err)
	require.Contains(t, out, "Hi")
	require.Contains(t, out, "<p>Body</p>")
	require.Contains(t, out, "Bye")
	require.NotContains(t, out, "{{")
	require.NotContains(t, out, "{%")
}

func TestExecuteButtonRegion(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)

	with, err := l.Execute(Fields{Title: "t", Content: "c", Footer: "f", ButtonText: "Go", ButtonURL: "https://x.com", HasButton: true})
	require.NoError(t, err)
	require.Contains(t, with, `href="https://x.com"`)
	require.Contains(t, with, ">Go</a>")

	without, err := l.Execute(Fields{Title: "t", Content: "c", Footer: "f", ButtonText: "Go", ButtonURL: "https://x.com"})
	require.NoError(t, err)
	require.NotContains(t, without, "email-button")
	require.NotContains(t, without, "https://x.com")
}

func TestExecuteImageRegion(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)
	out, err := l.Execute(Fields{Title: "t", Content: "c", Footer: "f"})
	require.NoError(t, err)
	require.NotContains(t, out, "<img")

	out, err = l.Execute(Fields{Title: "t", Content: "c", Footer: "f", ImageURL: "https://example.com/x.png"})
	require.NoError(t, err)
	require.Contains(t, out, `src="https://example.com/x.png"`)
}

func TestExecuteEscapesAllButContent(t *testing.T) {
	l, err := Parse("<h1>{{title}}</h1><div>{{content}}</div><p>{{footer}}</p>")
	require.NoError(t, err)
	out, err := l.Execute(Fields{Title: "<b>T</b>", Content: "<b>C</b>", Footer: "a & b"})
	require.NoError(t, err)
	require.Equal(t, "<h1>&lt;b&gt;T&lt;/b&gt;</h1><div><b>C</b></div><p>a &amp; b</p>", out)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "layout.html")
	require.NoError(t, os.WriteFile(p, []byte("<p>{{title}}</p>"), 0o644))
	l, err := Load(p)
	require.NoError(t, err)
	out, err := l.Execute(Fields{Title: "x"})
	require.NoError(t, err)
	require.Equal(t, "<p>x</p>", strings.TrimSpace(out))

	_, err = Load(filepath.Join(dir, "missing.html"))
	require.Error(t, err)
}

func TestParseRejectsEmptyAndBroken(t *testing.T) {
	_, err := Parse("")
	require.ErrorIs(t, err, ErrEmpty)
	_, err = Parse("{% if hasButton %}never closed")
	require.Error(t, err)
}
