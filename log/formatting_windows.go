package log

// Windows consoles are not guaranteed to render ANSI escape codes.

func (s Severity) color() string {
	return ""
}

func endColor() string {
	return ""
}
