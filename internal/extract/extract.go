package extract

import (
	"strings"
)

// Extract returns all symbols declared in content, in declaration order.
// Unsupported languages yield an empty result, not an error.
func Extract(filePath string, content string, lang Language) []Symbol {
	spec, ok := languageSpecs[lang]
	if !ok {
		return nil
	}

	lines := splitLines(content)
	symbols := make([]Symbol, 0, 16)

	for i, line := range lines {
		name, kind, matched := matchLine(spec, line)
		if !matched {
			continue
		}
		if spec.topLevelOnly[kind] && hasIndent(line) {
			continue
		}

		sym := Symbol{
			Name:      name,
			Kind:      kind,
			FilePath:  filePath,
			Line:      i + 1,
			EndLine:   i + 1,
			Signature: strings.TrimRight(line, " \t\r"),
			Doc:       docComment(spec, lines, i),
		}

		if kind == KindFunction || kind == KindClass {
			sym.EndLine = blockEnd(spec, lines, i)
		}

		symbols = append(symbols, sym)
	}

	return symbols
}

// matchLine tries each pattern in order and returns the first match.
func matchLine(spec *languageSpec, line string) (string, SymbolKind, bool) {
	for _, p := range spec.patterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, group := range m[1:] {
			if group != "" {
				return group, p.kind, true
			}
		}
	}
	return "", "", false
}

// docComment collects the contiguous comment block immediately preceding
// line index declIdx, verbatim. Returns "" when there is none.
func docComment(spec *languageSpec, lines []string, declIdx int) string {
	var block []string
	for i := declIdx - 1; i >= 0; i-- {
		if !isCommentLine(spec, lines[i]) {
			break
		}
		block = append(block, lines[i])
	}
	if len(block) == 0 {
		return ""
	}
	// Collected bottom-up; restore source order
	for l, r := 0, len(block)-1; l < r; l, r = l+1, r-1 {
		block[l], block[r] = block[r], block[l]
	}
	return strings.Join(block, "\n")
}

func isCommentLine(spec *languageSpec, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, prefix := range spec.commentPrefix {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// blockEnd computes the extent of a function/class block starting at
// declIdx, returning the 1-based end line.
func blockEnd(spec *languageSpec, lines []string, declIdx int) int {
	switch spec.extent {
	case extentBraces:
		return braceEnd(lines, declIdx)
	case extentIndent:
		return indentEnd(lines, declIdx)
	default:
		return declIdx + 1
	}
}

// braceEnd tracks nesting depth from the opening brace found on or after
// the declaration line until depth returns to zero. Braces inside strings
// or comments are not distinguished; mis-counting there is an accepted
// imprecision of line-oriented extraction.
func braceEnd(lines []string, declIdx int) int {
	depth := 0
	opened := false

	for i := declIdx; i < len(lines); i++ {
		for _, ch := range lines[i] {
			switch ch {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return i + 1
		}
		// No opening brace near the declaration: single-line form
		if !opened && i > declIdx+1 {
			return declIdx + 1
		}
	}

	if opened {
		return len(lines)
	}
	return declIdx + 1
}

// indentEnd ends the block at the last line indented deeper than the
// declaration; the first subsequent non-blank line at or below the
// declaration's indentation terminates it.
func indentEnd(lines []string, declIdx int) int {
	declIndent := indentWidth(lines[declIdx])
	end := declIdx + 1

	for i := declIdx + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if indentWidth(lines[i]) <= declIndent {
			break
		}
		end = i + 1
	}

	return end
}

func indentWidth(line string) int {
	width := 0
	for _, ch := range line {
		switch ch {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

func hasIndent(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

// splitLines splits content on newlines, tolerating CRLF.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
