package render

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles and icons a terminal renderer draws with.
type Theme struct {
	Name    string
	Primary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons are the status markers drawn before rows and metrics.
type ThemeIcons struct {
	Pass   string
	Fail   string
	Warn   string
	Info   string
	Bullet string
}

var (
	unicodeIcons = ThemeIcons{Pass: "✓", Fail: "✗", Warn: "⚠", Info: "●", Bullet: "·"}
	asciiIcons   = ThemeIcons{Pass: "+", Fail: "x", Warn: "!", Info: "*", Bullet: "-"}
)

// palette maps each status role to a colour.
type palette struct {
	primary, success, warning, failure, muted lipgloss.TerminalColor
}

func (p palette) theme(name string, icons ThemeIcons, bold lipgloss.Style) Theme {
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return Theme{
		Name:    name,
		Primary: fg(p.primary),
		Success: fg(p.success),
		Warning: fg(p.warning),
		Error:   fg(p.failure),
		Muted:   fg(p.muted),
		Bold:    bold,
		Icons:   icons,
	}
}

// DefaultTheme is a 256-colour theme for dark terminals.
func DefaultTheme() Theme {
	return palette{
		primary: lipgloss.Color("39"),
		success: lipgloss.Color("34"),
		warning: lipgloss.Color("214"),
		failure: lipgloss.Color("196"),
		muted:   lipgloss.Color("242"),
	}.theme("default", unicodeIcons, lipgloss.NewStyle().Bold(true))
}

// ClassroomTheme is for grade reviews on a shared screen or projector. Its
// colours adapt to light and dark backgrounds, failures and warnings are
// bold so they survive washed-out projection, and icons are ASCII so any
// classroom machine's font can draw them.
func ClassroomTheme() Theme {
	t := palette{
		primary: lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#93c5fd"},
		success: lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#86efac"},
		warning: lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fcd34d"},
		failure: lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#fca5a5"},
		muted:   lipgloss.AdaptiveColor{Light: "#4b5563", Dark: "#9ca3af"},
	}.theme("classroom", asciiIcons, lipgloss.NewStyle().Bold(true).Underline(true))
	t.Error = t.Error.Bold(true)
	t.Warning = t.Warning.Bold(true)
	return t
}

// MonoTheme draws no colours, no emphasis and only ASCII icons.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:    "mono",
		Primary: plain,
		Success: plain,
		Warning: plain,
		Error:   plain,
		Muted:   plain,
		Bold:    plain,
		Icons:   asciiIcons,
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "classroom":
		return ClassroomTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
