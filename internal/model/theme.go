package model

// Theme is a persisted display preference. Rendering is a client concern;
// the server only stores and echoes it.
type Theme string

const (
	ThemeSystem  Theme = "system"
	ThemeDynamic Theme = "dynamic"
	ThemeDark    Theme = "dark"
	ThemeLight   Theme = "light"
)

// ParseTheme maps a serialized token to a theme, falling back to System.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeDynamic:
		return ThemeDynamic
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	default:
		return ThemeSystem
	}
}
