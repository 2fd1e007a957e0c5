package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Engineering":        "engineering",
		"Data & Analytics":   "data-analytics",
		"  Remote  Work  ":   "remote-work",
		"Café Management":    "cafe-management",
		"C++ / Systems":      "c-systems",
		"Über-Führung":       "uber-fuhrung",
		"already-slugged":    "already-slugged",
		"Trailing Symbols!!": "trailing-symbols",
		"!!!":                "",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}
