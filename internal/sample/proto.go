package sample

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

func extractProto(code string, symbols []string) (string, error) {
	if len(symbols) == 0 {
		return "", fmt.Errorf("%w: no symbols given", ErrExtractionFailed)
	}
	snippets := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		snippet, err := extractSymbol(code, sym)
		if err != nil {
			return "", err
		}
		snippets = append(snippets, strings.TrimSpace(snippet))
	}
	return strings.Join(snippets, "\n\n"), nil
}

// extractSymbol finds the first line starting with sym and returns the
// statement it opens together with the comment lines directly above it.
func extractSymbol(code, sym string) (string, error) {
	pattern := `(?m)^([ \t]*)` + regexp.QuoteMeta(sym)
	if r, _ := utf8.DecodeLastRuneInString(sym); r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		pattern += `\b`
	}
	loc := regexp.MustCompile(pattern).FindStringSubmatchIndex(code)
	if loc == nil {
		return "", fmt.Errorf("%w: %q", ErrSymbolNotFound, sym)
	}
	lineStart, indent, symStart := loc[0], loc[3]-loc[2], loc[3]

	rel := strings.IndexAny(code[symStart:], ":{;")
	if rel < 0 {
		return "", fmt.Errorf("%w: %q", ErrNoBlockTerminator, sym)
	}
	term := symStart + rel

	var end int
	switch code[term] {
	case ':':
		end = dedentEnd(code, term, indent)
	case '{':
		var err error
		if end, err = braceEnd(code, term); err != nil {
			return "", fmt.Errorf("%w: %q", err, sym)
		}
	default:
		end = term + 1
	}

	return code[leadingComments(code, lineStart):end], nil
}

// dedentEnd returns the start of the first non-blank line after pos whose
// indentation is at most indent, or len(code).
func dedentEnd(code string, pos, indent int) int {
	nl := strings.IndexByte(code[pos:], '\n')
	if nl < 0 {
		return len(code)
	}
	for start := pos + nl + 1; start < len(code); {
		end := strings.IndexByte(code[start:], '\n')
		line := code[start:]
		if end >= 0 {
			line = code[start : start+end]
		}
		trimmed := strings.TrimLeft(line, " \t")
		if strings.TrimSpace(trimmed) != "" && len(line)-len(trimmed) <= indent {
			return start
		}
		if end < 0 {
			break
		}
		start += end + 1
	}
	return len(code)
}

// braceEnd returns the offset just past the brace matching the one at open.
// Braces inside double-quoted strings and line comments are not counted.
func braceEnd(code string, open int) (int, error) {
	depth := 0
	for i := open; i < len(code); i++ {
		switch c := code[i]; {
		case c == '"':
			for i++; i < len(code) && code[i] != '"' && code[i] != '\n'; i++ {
				if code[i] == '\\' {
					i++
				}
			}
		case c == '/' && strings.HasPrefix(code[i:], "//"):
			nl := strings.IndexByte(code[i:], '\n')
			if nl < 0 {
				return 0, ErrUnbalancedBlock
			}
			i += nl
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, ErrUnbalancedBlock
}

// leadingComments moves lineStart up over the comment lines directly above it.
func leadingComments(code string, lineStart int) int {
	start := lineStart
	for start > 0 {
		prevEnd := start - 1
		prevStart := strings.LastIndexByte(code[:prevEnd], '\n') + 1
		trimmed := strings.TrimLeft(code[prevStart:prevEnd], " \t")
		if !strings.HasPrefix(trimmed, "//") && !strings.HasPrefix(trimmed, "#") {
			break
		}
		start = prevStart
	}
	return start
}
