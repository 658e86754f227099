package render

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	leftDelim  = "{{"
	rightDelim = "}}"
)

// Actions that only steer the template and produce no text of their own.
var blockKeywords = map[string]bool{
	"if":       true,
	"else":     true,
	"end":      true,
	"range":    true,
	"with":     true,
	"define":   true,
	"block":    true,
	"template": true,
	"break":    true,
	"continue": true,
}

var declaration = regexp.MustCompile(`^\$[A-Za-z0-9_]*\s*:?=`)

// StripBlockWhitespace rewrites template source so that lines holding only
// block actions leave no trace in the output. lstrip drops the spaces and
// tabs between the start of a line and a block action; trim drops the
// first newline after a block action.
func StripBlockWhitespace(src string, lstrip, trim bool) string {
	if !lstrip && !trim {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))

	pending := 0
	i := 0
	for {
		open := strings.Index(src[i:], leftDelim)
		if open < 0 {
			break
		}
		open += i

		end := actionEnd(src, open+len(leftDelim))
		if end < 0 {
			// unterminated; the parser reports it
			break
		}

		action := src[open:end]
		if !isBlockAction(action) {
			i = end
			continue
		}

		start := open
		if lstrip {
			lineStart := strings.LastIndexByte(src[:open], '\n') + 1
			if lineStart >= pending && isBlank(src[lineStart:open]) {
				start = lineStart
			}
		}

		b.WriteString(src[pending:start])
		b.WriteString(action)
		pending = end

		if trim {
			switch {
			case strings.HasPrefix(src[end:], "\r\n"):
				pending += 2
			case strings.HasPrefix(src[end:], "\n"):
				pending++
			}
		}
		i = pending
	}

	b.WriteString(src[pending:])
	return b.String()
}

// actionEnd returns the index just past the right delimiter of the action
// whose body starts at pos, or -1.
func actionEnd(src string, pos int) int {
	body := src[pos:]
	if strings.HasPrefix(body, "/*") || strings.HasPrefix(body, "- /*") {
		stop := strings.Index(body, "*/")
		if stop < 0 {
			return -1
		}
		end := strings.Index(body[stop:], rightDelim)
		if end < 0 {
			return -1
		}
		return pos + stop + end + len(rightDelim)
	}

	for i := pos; i < len(src); {
		switch c := src[i]; c {
		case '"', '\'':
			i = skipQuoted(src, i+1, c)
			continue
		case '`':
			j := strings.IndexByte(src[i+1:], '`')
			if j < 0 {
				return -1
			}
			i += j + 2
			continue
		}
		if strings.HasPrefix(src[i:], rightDelim) {
			return i + len(rightDelim)
		}
		i++
	}
	return -1
}

func skipQuoted(src string, i int, quote byte) int {
	for ; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(src)
}

func isBlockAction(action string) bool {
	inner := action[len(leftDelim) : len(action)-len(rightDelim)]

	if len(inner) >= 2 && inner[0] == '-' && isSpace(inner[1]) {
		inner = inner[1:]
	}
	if n := len(inner); n >= 2 && inner[n-1] == '-' && isSpace(inner[n-2]) {
		inner = inner[:n-1]
	}
	inner = strings.TrimSpace(inner)

	if strings.HasPrefix(inner, "/*") || declaration.MatchString(inner) {
		return true
	}

	word := inner
	if n := strings.IndexFunc(inner, func(r rune) bool { return !unicode.IsLetter(r) }); n >= 0 {
		word = inner[:n]
	}
	return blockKeywords[word]
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return false
		}
	}
	return true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
