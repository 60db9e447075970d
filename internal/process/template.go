// Package process turns command templates into argument vectors and runs
// them in the foreground or detached.
package process

import (
	"fmt"
	"strings"
	"unicode"
)

// Placeholder expands to the selected entry names, or to the entry under
// the cursor when nothing is selected. It is only recognized as a whole
// token.
const Placeholder = "%s"

// Template is a command line: the program followed by argument tokens.
type Template []string

// TemplateError rejects a template before anything is run.
type TemplateError struct {
	Template Template
	Reason   string
}

func (e *TemplateError) Error() string {
	if len(e.Template) == 0 {
		return "invalid command: " + e.Reason
	}
	return fmt.Sprintf("invalid command %q: %s", strings.Join(e.Template, " "), e.Reason)
}

// Program returns token 0, or "" for an empty template.
func (t Template) Program() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Validate checks that the template names a program.
func (t Template) Validate() error {
	switch {
	case len(t) == 0:
		return &TemplateError{Template: t, Reason: "empty command"}
	case strings.TrimSpace(t[0]) == "":
		return &TemplateError{Template: t, Reason: "missing program name"}
	case t[0] == Placeholder:
		return &TemplateError{Template: t, Reason: "program name cannot be the selection placeholder"}
	}
	return nil
}

func (t Template) String() string {
	return strings.Join(t, " ")
}

// ParseTemplate splits a command string on whitespace, honouring single and
// double quotes. A leading ~/ in the program is expanded to the home
// directory.
func ParseTemplate(cmd string) Template {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var (
		tokens   Template
		current  strings.Builder
		inSingle bool
		inDouble bool
		pending  bool
	)
	flush := func() {
		if pending {
			tokens = append(tokens, current.String())
			current.Reset()
			pending = false
		}
	}

	for _, r := range cmd {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			pending = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			pending = true
		case unicode.IsSpace(r) && !inSingle && !inDouble:
			flush()
		default:
			current.WriteRune(r)
			pending = true
		}
	}
	flush()

	if len(tokens) > 0 {
		tokens[0] = expandUserPath(tokens[0])
	}
	return tokens
}
