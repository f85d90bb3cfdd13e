package ui

// Role is a semantic color slot of a Theme.
type Role int

const (
	Primary Role = iota
	Secondary
	Success
	Warning
	Error
	Info
	Bold
	Underline
	Reset
)

// Code returns the escape sequence t uses for r, or "" for an unknown role.
func (t Theme) Code(r Role) string {
	switch r {
	case Primary:
		return t.Primary
	case Secondary:
		return t.Secondary
	case Success:
		return t.Success
	case Warning:
		return t.Warning
	case Error:
		return t.Error
	case Info:
		return t.Info
	case Bold:
		return t.Bold
	case Underline:
		return t.Underline
	case Reset:
		return t.Reset
	}
	return ""
}

// Code returns the escape sequence of r in the current theme.
func Code(r Role) string { return GetCurrentTheme().Code(r) }

// Paint wraps s in the color of r and a reset, or returns s unchanged when the
// current theme has no color for r.
func Paint(r Role, s string) string {
	t := GetCurrentTheme()
	code := t.Code(r)
	if code == "" {
		return s
	}
	return code + s + t.Reset
}
