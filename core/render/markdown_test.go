package render_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/feedpipe/core"
	"github.com/gaurav-prasanna/feedpipe/core/convert"
	"github.com/gaurav-prasanna/feedpipe/core/render"
)

// stubConverter records calls and returns a fixed conversion.
type stubConverter struct {
	calls int
	err   error
}

func (s *stubConverter) Convert(html string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "MD(" + html + ")", nil
}

func sampleEntry() core.Entry {
	return core.Entry{
		ID:          "urn:x",
		Date:        "2003-12-13T18:30:02Z",
		Link:        "http://example.org/2003/12/13/atom03",
		Title:       "  Atom-Powered   Robots Run Amok ",
		Content:     "<p>Body</p>",
		Description: "Some\n\ttext.",
		Author:      "John Doe",
		Categories:  []string{"robots", "news"},
		Video:       "https://v.example/1.mp4",
		Image:       "https://v.example/1.jpg",
		Images:      []string{"https://i.example/a.png", "https://i.example/b.gif"},
		Views:       "48",
		Rating:      "5.00",
	}
}

func TestRender_AtomScenario(t *testing.T) {
	t.Parallel()

	e := core.Entry{
		ID:          "urn:x",
		Date:        "2003-12-13T18:30:02Z",
		Link:        "http://example.org/2003/12/13/atom03",
		Title:       "Atom-Powered Robots Run Amok",
		Description: "Some text.",
		Author:      "John Doe",
		Categories:  []string{},
		Images:      []string{},
	}
	tmpl := "# [TITLE]\n**Link:** [LINK]\n**Description:** [DESCRIPTION]\n**Author:** [AUTHOR]\n**Published Date:** [DATE]"

	res, err := render.NewTemplateRenderer(convert.New()).Render(tmpl, e)
	require.NoError(t, err)

	want := "# Atom-Powered Robots Run Amok\n" +
		"**Link:** http://example.org/2003/12/13/atom03\n" +
		"**Description:** Some text.\n" +
		"**Author:** John Doe\n" +
		"**Published Date:** 2003-12-13T18:30:02Z"
	assert.Equal(t, want, res.Output)
	assert.Equal(t, "2003-12-13T18:30:02Z", res.Date)
	assert.Equal(t, "Atom-Powered Robots Run Amok", res.Title)
}

func TestRender_MediaFields(t *testing.T) {
	t.Parallel()

	r := render.NewTemplateRenderer(&stubConverter{})
	res, err := r.Render("**Views:** [VIEWS]\n**Rating:** [RATING]\n![Thumbnail]([IMAGE])", sampleEntry())
	require.NoError(t, err)
	assert.Equal(t, "**Views:** 48\n**Rating:** 5.00\n![Thumbnail](https://v.example/1.jpg)", res.Output)
}

func TestRender_AllPlaceholders(t *testing.T) {
	t.Parallel()

	var tmpl strings.Builder
	for _, p := range render.Placeholders {
		tmpl.WriteString(p + "=[" + p + "]\n")
	}

	res, err := render.NewTemplateRenderer(&stubConverter{}).Render(tmpl.String(), sampleEntry())
	require.NoError(t, err)

	for _, p := range render.Placeholders {
		assert.NotContains(t, res.Output, "["+p+"]")
	}
	assert.Contains(t, res.Output, "ID=urn:x\n")
	assert.Contains(t, res.Output, "TITLE=Atom-Powered Robots Run Amok\n")
	assert.Contains(t, res.Output, "DESCRIPTION=Some text.\n")
	assert.Contains(t, res.Output, "CONTENT=<p>Body</p>\n")
	assert.Contains(t, res.Output, "MARKDOWN=MD(<p>Body</p>)\n")
	assert.Contains(t, res.Output, "IMAGES=https://i.example/a.png,https://i.example/b.gif\n")
	assert.Contains(t, res.Output, "CATEGORIES=robots,news\n")
	// The raw title is returned for naming; collapsing only applies to output.
	assert.Equal(t, "  Atom-Powered   Robots Run Amok ", res.Title)
}

func TestRender_EveryOccurrence(t *testing.T) {
	t.Parallel()

	res, err := render.NewTemplateRenderer(nil).Render("[ID] and [ID] and [ID]", sampleEntry())
	require.NoError(t, err)
	assert.Equal(t, "urn:x and urn:x and urn:x", res.Output)
}

func TestRender_EmptyFields(t *testing.T) {
	t.Parallel()

	res, err := render.NewTemplateRenderer(&stubConverter{}).Render("[VIDEO]|[IMAGES]|[CATEGORIES]|[MARKDOWN]|[VIEWS]", core.Entry{})
	require.NoError(t, err)
	assert.Equal(t, "||||", res.Output)
}

func TestRender_UnknownTokensUntouched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{name: "unknown", tmpl: "[FOO] [title] [ ID ]", want: "[FOO] [title] [ ID ]"},
		{name: "markdown link", tmpl: "[read more]([LINK])", want: "[read more](http://example.org/2003/12/13/atom03)"},
		{name: "nested", tmpl: "[[ID]]", want: "[urn:x]"},
		{name: "unclosed", tmpl: "[ID] [AUTHOR", want: "urn:x [AUTHOR"},
		{name: "no placeholders", tmpl: "plain text", want: "plain text"},
		{name: "empty", tmpl: "", want: ""},
	}

	r := render.NewTemplateRenderer(&stubConverter{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := r.Render(tt.tmpl, sampleEntry())
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Output)
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	r := render.NewTemplateRenderer(convert.New())
	tmpl := "# [TITLE]\n[MARKDOWN]\n[CATEGORIES]"

	first, err := r.Render(tmpl, sampleEntry())
	require.NoError(t, err)
	second, err := r.Render(tmpl, sampleEntry())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_ConvertsOnlyWhenNeeded(t *testing.T) {
	t.Parallel()

	stub := &stubConverter{}
	r := render.NewTemplateRenderer(stub)

	_, err := r.Render("[TITLE]", sampleEntry())
	require.NoError(t, err)
	assert.Equal(t, 0, stub.calls)

	_, err = r.Render("[MARKDOWN][MARKDOWN]", sampleEntry())
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
}

func TestRender_ConverterError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := render.NewTemplateRenderer(&stubConverter{err: boom}).Render("[MARKDOWN]", sampleEntry())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

var leftover = regexp.MustCompile(`\[(ID|DATE|LINK|TITLE|DESCRIPTION|CONTENT|MARKDOWN|AUTHOR|VIDEO|IMAGE|IMAGES|CATEGORIES|VIEWS|RATING)\]`)

func TestRender_NoPlaceholderSurvives(t *testing.T) {
	t.Parallel()

	tmpl := strings.Repeat("[TITLE][IMAGES][IMAGE][DESCRIPTION]", 3)
	res, err := render.NewTemplateRenderer(&stubConverter{}).Render(tmpl, core.Entry{})
	require.NoError(t, err)
	assert.False(t, leftover.MatchString(res.Output))
}
