package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/feedpipe/core/extract"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{name: "plain text", html: "Just words here", want: "Just words here"},
		{name: "paragraph", html: "<p>Hello <strong>world</strong></p>", want: "Hello world"},
		{name: "entities", html: "<p>Fish &amp; chips</p>", want: "Fish & chips"},
		{name: "script removed", html: "<p>Keep</p><script>drop()</script>", want: "Keep"},
		{name: "empty", html: "", want: ""},
	}

	e := extract.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := e.Extract(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(got))
		})
	}
}
