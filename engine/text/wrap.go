package text

import "strings"

// Wrap breaks s into lines no wider than maxWidth, splitting at spaces and
// keeping explicit newlines. Lines are substrings of s. A single word wider
// than maxWidth gets a line of its own. maxWidth <= 0 only splits at
// newlines.
func Wrap(s string, maxWidth float32, width func(string) float32) []string {
	var lines []string
	for {
		raw, rest, more := strings.Cut(s, "\n")
		lines = wrapLine(lines, raw, maxWidth, width)
		if !more {
			return lines
		}
		s = rest
	}
}

func wrapLine(lines []string, s string, maxWidth float32, width func(string) float32) []string {
	if maxWidth <= 0 || width(s) <= maxWidth {
		return append(lines, s)
	}
	start, end := -1, -1 // current line s[start:end]
	for i := 0; i < len(s); {
		if s[i] == ' ' {
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] != ' ' {
			j++
		}
		switch {
		case start < 0:
			start, end = i, j
		case width(s[start:j]) <= maxWidth:
			end = j
		default:
			lines = append(lines, s[start:end])
			start, end = i, j
		}
		i = j
	}
	if start < 0 {
		return append(lines, "")
	}
	return append(lines, s[start:end])
}
