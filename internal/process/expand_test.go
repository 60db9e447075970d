package process

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSelection struct {
	selected []string
	cursor   string
	hasEntry bool
}

func (f fakeSelection) SelectedNames() []string { return f.selected }

func (f fakeSelection) CursorName() (string, bool) { return f.cursor, f.hasEntry }

func TestExpandSelectedEntriesInOrder(t *testing.T) {
	sel := fakeSelection{selected: []string{"x", "y", "z"}, cursor: "y", hasEntry: true}
	got := Expand(Template{"rm", "-v", "%s", "--"}, sel)
	assert.Equal(t, []string{"rm", "-v", "x", "y", "z", "--"}, got)
}

func TestExpandFallsBackToCursor(t *testing.T) {
	sel := fakeSelection{cursor: "notes.txt", hasEntry: true}
	got := Expand(Template{"vim", "%s"}, sel)
	assert.Equal(t, []string{"vim", "notes.txt"}, got)
}

func TestExpandEmptyDirectoryContributesNothing(t *testing.T) {
	got := Expand(Template{"echo", "%s"}, fakeSelection{})
	assert.Equal(t, []string{"echo"}, got)

	got = Expand(Template{"echo", "%s"}, nil)
	assert.Equal(t, []string{"echo"}, got)
}

func TestExpandOnlyWholeTokens(t *testing.T) {
	sel := fakeSelection{selected: []string{"a"}}
	got := Expand(Template{"printf", "name=%s", "%s%s", "%s"}, sel)
	assert.Equal(t, []string{"printf", "name=%s", "%s%s", "a"}, got)
}

func TestExpandNeverTreatsProgramAsPlaceholder(t *testing.T) {
	sel := fakeSelection{selected: []string{"a"}}
	got := Expand(Template{"%s", "%s"}, sel)
	assert.Equal(t, []string{"%s", "a"}, got)
}

func TestExpandRepeatsPlaceholder(t *testing.T) {
	sel := fakeSelection{selected: []string{"a", "b"}}
	got := Expand(Template{"diff", "%s", "%s"}, sel)
	assert.Equal(t, []string{"diff", "a", "b", "a", "b"}, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		tmpl  Template
		valid bool
	}{
		{"empty", Template{}, false},
		{"blank program", Template{"  ", "%s"}, false},
		{"placeholder program", Template{"%s"}, false},
		{"ok", Template{"ls", "-l"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tmpl.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var tmplErr *TemplateError
			require.True(t, errors.As(err, &tmplErr), "expected TemplateError, got %v", err)
		})
	}
}

func TestParseTemplate(t *testing.T) {
	assert.Equal(t, Template{"code", "--wait", "%s"}, ParseTemplate("  code --wait %s "))
	assert.Equal(t, Template{"sh", "-c", "echo 'hi there'", "%s"}, ParseTemplate(`sh -c "echo 'hi there'" %s`))
	assert.Equal(t, Template{"printf", ""}, ParseTemplate(`printf ''`))
	assert.Nil(t, ParseTemplate("   "))
}
