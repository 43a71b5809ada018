package frontmatter

import (
	"bytes"
	"testing"

	adrg "github.com/adrg/frontmatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantOK   bool
		block    string
		body     string
		bodyLine int
	}{
		{
			name:     "title block",
			text:     "---\ntitle: Report\n---\n## Sheet\n",
			wantOK:   true,
			block:    "title: Report",
			body:     "## Sheet\n",
			bodyLine: 3,
		},
		{
			name:     "empty block",
			text:     "---\n---\nbody",
			wantOK:   true,
			block:    "",
			body:     "body",
			bodyLine: 2,
		},
		{
			name:     "closing delimiter at end of text",
			text:     "---\na: 1\n---",
			wantOK:   true,
			block:    "a: 1",
			body:     "",
			bodyLine: 3,
		},
		{
			name:   "not at start",
			text:   "\n---\na: 1\n---\n",
			wantOK: false,
			body:   "\n---\na: 1\n---\n",
		},
		{
			name:   "unterminated",
			text:   "---\na: 1\nb: 2\n",
			wantOK: false,
			body:   "---\na: 1\nb: 2\n",
		},
		{
			name:   "thematic break with text",
			text:   "--- x\na: 1\n---\n",
			wantOK: false,
			body:   "--- x\na: 1\n---\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, body, line, ok := Extract(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.block, block)
			assert.Equal(t, tt.body, body)
			assert.Equal(t, tt.bodyLine, line)
		})
	}
}

func TestParseScalars(t *testing.T) {
	block := `title: My Workbook
count: 42
negative: -7
ratio: 0.5
version: "1.0"
enabled: True
disabled: false
quoted: 'single'
plain: hello world # trailing comment
hash: "not # a comment"
empty:
url: http://example.com/a#b
`
	got := Parse(block)

	assert.Equal(t, "My Workbook", got["title"])
	assert.Equal(t, 42, got["count"])
	assert.Equal(t, -7, got["negative"])
	assert.Equal(t, 0.5, got["ratio"])
	assert.Equal(t, "1.0", got["version"])
	assert.Equal(t, true, got["enabled"])
	assert.Equal(t, false, got["disabled"])
	assert.Equal(t, "single", got["quoted"])
	assert.Equal(t, "hello world", got["plain"])
	assert.Equal(t, "not # a comment", got["hash"])
	assert.Contains(t, got, "empty")
	assert.Nil(t, got["empty"])
	assert.Equal(t, "http://example.com/a#b", got["url"])
}

func TestParseNested(t *testing.T) {
	block := `# leading comment
author:
  name: Ada
  roles:
    - admin
    - editor
tags:
- alpha
- beta
items:
  -
    id: 1
    label: first
  -
    id: 2
    label: second
notes: |
  line one

  line two
after: done
`
	got := Parse(block)

	assert.Equal(t, map[string]any{
		"name":  "Ada",
		"roles": []any{"admin", "editor"},
	}, got["author"])
	assert.Equal(t, []any{"alpha", "beta"}, got["tags"])
	assert.Equal(t, []any{
		map[string]any{"id": 1, "label": "first"},
		map[string]any{"id": 2, "label": "second"},
	}, got["items"])
	assert.Equal(t, "line one\n\nline two", got["notes"])
	assert.Equal(t, "done", got["after"])
	assert.NotContains(t, got, "# leading comment")
}

func TestParseTolerance(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("   \n\n"))

	got := Parse("just text\nkey: value\n[broken\n")
	assert.Equal(t, map[string]any{"key": "value"}, got)
}

func TestMarshalOrdering(t *testing.T) {
	out := Marshal(map[string]any{
		"zeta":  1,
		"alpha": "a",
		"title": "Book",
	})
	assert.Equal(t, "title: Book\nalpha: a\nzeta: 1\n", out)
}

func TestMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
	}{
		{name: "scalars", in: map[string]any{
			"title": "Quarterly Report",
			"n":     3,
			"pi":    3.25,
			"whole": 2.0,
			"ok":    true,
		}},
		{name: "type hazards", in: map[string]any{
			"version": "1.0",
			"answer":  "42",
			"flag":    "true",
			"empty":   "",
			"padded":  "  x  ",
			"hash":    "a #b",
			"lead":    "#tag",
			"quote":   `"q"`,
			"dash":    "- item",
			"pipe":    "|",
		}},
		{name: "nested", in: map[string]any{
			"meta": map[string]any{
				"owner": "ops",
				"tags":  []any{"x", "y"},
			},
			"rows": []any{
				map[string]any{"a": 1},
				map[string]any{"b": "two"},
			},
			"nothing": nil,
		}},
		{name: "multiline", in: map[string]any{
			"notes": "first\n  indented\n\nlast",
		}},
		{name: "awkward keys", in: map[string]any{
			"a: b": "colon",
			"#k":   "hash",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Marshal(tt.in)
			assert.Equal(t, tt.in, Parse(out), "output:\n%s", out)
		})
	}
}

func TestMarshalIsValidYAML(t *testing.T) {
	in := map[string]any{
		"title":   "Report",
		"version": "1.0",
		"count":   7,
		"ratio":   1.5,
		"draft":   false,
		"tags":    []any{"a", "b"},
		"owner":   map[string]any{"name": "Ada"},
		"notes":   "one\ntwo",
	}

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(Marshal(in)), &decoded))

	assert.Equal(t, "Report", decoded["title"])
	assert.Equal(t, "1.0", decoded["version"])
	assert.Equal(t, 7, decoded["count"])
	assert.Equal(t, 1.5, decoded["ratio"])
	assert.Equal(t, false, decoded["draft"])
	assert.Equal(t, []any{"a", "b"}, decoded["tags"])
	assert.Equal(t, map[string]any{"name": "Ada"}, decoded["owner"])
	assert.Equal(t, "one\ntwo\n", decoded["notes"])
}

func TestRenderSplitsWithFrontmatterLibrary(t *testing.T) {
	doc := Render(Marshal(map[string]any{"title": "Book", "owner": "ops"})) + "# Body\n"

	var meta struct {
		Title string `yaml:"title"`
		Owner string `yaml:"owner"`
	}
	body, err := adrg.Parse(bytes.NewReader([]byte(doc)), &meta)
	require.NoError(t, err)

	assert.Equal(t, "Book", meta.Title)
	assert.Equal(t, "ops", meta.Owner)
	assert.Equal(t, "# Body\n", string(body))

	block, rest, line, ok := Extract(doc)
	require.True(t, ok)
	assert.Equal(t, "# Body\n", rest)
	assert.Equal(t, 4, line)
	assert.Equal(t, map[string]any{"title": "Book", "owner": "ops"}, Parse(block))
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "---\n---\n", Render(""))
	assert.Equal(t, "---\na: 1\n---\n", Render("a: 1"))
}
