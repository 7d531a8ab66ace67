// Package render turns selected resume content into a filled LaTeX
// document.
package render

import "strings"

// Escape escapes the LaTeX special characters in text content.
// Special characters: \ { } $ & % # ^ _ ~
func Escape(text string) (escaped string) {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			result.WriteRune(r)
		}
	}

	escaped = result.String()
	return escaped
}

// EscapeURL escapes a URL for use inside \href{url}{text}. URLs are
// expected to be URL-encoded already, so only backslashes need handling.
// Escaping braces here would break the \href structure.
func EscapeURL(url string) (escaped string) {
	escaped = strings.ReplaceAll(url, "\\", `\textbackslash{}`)
	return escaped
}
