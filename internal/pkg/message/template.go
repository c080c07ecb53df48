package message

import "strings"

// Placeholder tokens recognized in a reminder template.
const (
	PlaceholderName   = "{{name}}"
	PlaceholderTime   = "{{time}}"
	PlaceholderBarber = "{{barber}}"
)

const fallbackBarber = "הספר"

// Vars holds the substitution values for one rendered reminder.
type Vars struct {
	Name   string
	Time   string
	Barber string
}

// DefaultTemplate returns the built-in reminder template, signed with the
// given barber name (or a generic signature when empty).
func DefaultTemplate(barber string) string {
	if barber == "" {
		barber = fallbackBarber
	}
	return "שלום {{name}}, תזכורת לתור שלך היום בשעה {{time}}. תודה, " + barber + " 💈"
}

// Render substitutes the placeholder tokens in template with the values from
// vars. Each token is replaced once, first occurrence only, in a single
// non-recursive pass; unrecognized placeholders are left verbatim. An empty
// template falls back to DefaultTemplate before substitution. Pure, no I/O.
func Render(template string, vars Vars) string {
	if template == "" {
		template = DefaultTemplate(vars.Barber)
	}
	barber := vars.Barber
	if barber == "" {
		barber = fallbackBarber
	}
	out := strings.Replace(template, PlaceholderName, vars.Name, 1)
	out = strings.Replace(out, PlaceholderTime, vars.Time, 1)
	out = strings.Replace(out, PlaceholderBarber, barber, 1)
	return out
}
