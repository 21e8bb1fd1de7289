package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Mixed CASE Title", "mixed-case-title"},
		{"Punctuation, stripped! (really?)", "punctuation-stripped-really"},
		{"multiple   spaces\tand tabs", "multiple-spaces-and-tabs"},
		{"already-a-slug", "already-a-slug"},
		{"under_scores survive", "under_scores-survive"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyProperties(t *testing.T) {
	titles := []string{
		"Hello World", "A Very, Very Long Title: With Colons & Symbols!",
		"   spaces   everywhere   ", "ALL CAPS", "digits 123 too",
	}
	for _, title := range titles {
		slug := Slugify(title)

		assert.Equal(t, strings.ToLower(slug), slug, "slug must be lowercase")
		assert.NotContains(t, slug, " ", "slug must contain no whitespace")
		assert.NotContains(t, slug, ",", "slug must contain no punctuation")
		assert.Equal(t, slug, Slugify(slug), "slugify must be idempotent")
	}
}
