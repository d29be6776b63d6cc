package index

import (
	"context"
	"regexp"
	"strings"

	"cix/internal/errors"
)

// ReferenceKind classifies how a symbol appears at a use site.
type ReferenceKind string

const (
	RefCall       ReferenceKind = "call"
	RefImport     ReferenceKind = "import"
	RefAssignment ReferenceKind = "assignment"
	RefReference  ReferenceKind = "reference"
)

// Reference is one use site of a symbol.
type Reference struct {
	FilePath string        `json:"filePath"`
	Line     int           `json:"line"`
	Kind     ReferenceKind `json:"kind"`
	Text     string        `json:"text"`
	Context  []string      `json:"context,omitempty"`
}

// ReferenceOutcome carries the found references plus truncation state.
type ReferenceOutcome struct {
	References []Reference `json:"references"`
	TotalFound int         `json:"totalFound"`
	Truncated  bool        `json:"truncated"`
}

// FindReferences scans every indexed file for whole-token occurrences of
// name. Declaration lines are excluded; each remaining occurrence is
// lexically classified as a call, import, assignment or plain reference.
// contextLines is the window either side of each hit; a negative value
// falls back to the configured default, zero suppresses context. Files
// are visited in path order so results are deterministic, and a cancelled
// context returns the partial set with Truncated set.
func (ix *Index) FindReferences(ctx context.Context, name string, contextLines, limit int) (*ReferenceOutcome, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New(errors.InvalidArgument, "symbol name must not be empty", nil)
	}
	if limit <= 0 {
		limit = 100
	}
	if contextLines < 0 {
		contextLines = ix.cfg.ContextLines
	}

	token, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return nil, errors.New(errors.InvalidArgument, "symbol name is not scannable", err)
	}
	callPattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
	assignPattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*(?::=|=[^=])`)

	entries := ix.snapshot()
	outcome := &ReferenceOutcome{}

	for _, entry := range entries {
		if ctx.Err() != nil {
			outcome.Truncated = true
			break
		}

		declared := declarationLines(entry, name)

		for i, line := range entry.Lines {
			lineNo := i + 1
			if declared[lineNo] {
				continue
			}
			if !token.MatchString(line) {
				continue
			}

			outcome.TotalFound++
			if len(outcome.References) >= limit {
				outcome.Truncated = true
				continue
			}

			outcome.References = append(outcome.References, Reference{
				FilePath: entry.Path,
				Line:     lineNo,
				Kind:     classifyReference(line, callPattern, assignPattern),
				Text:     strings.TrimSpace(line),
				Context:  contextWindow(entry.Lines, i, contextLines),
			})
		}
	}

	ix.referencesFound.Add(uint64(outcome.TotalFound))

	return outcome, nil
}

// declarationLines maps line numbers where name is declared in entry.
func declarationLines(entry *FileEntry, name string) map[int]bool {
	declared := make(map[int]bool)
	for _, sym := range entry.Symbols {
		if sym.Name == name {
			declared[sym.Line] = true
		}
	}
	return declared
}

// classifyReference decides the use-site kind from the line's shape alone.
// Calls win over assignments when both patterns match, which handles lines
// like `x = f(y)` scanned for f.
func classifyReference(line string, call, assign *regexp.Regexp) ReferenceKind {
	trimmed := strings.TrimSpace(line)
	if isImportLine(trimmed) {
		return RefImport
	}
	if call.MatchString(line) {
		return RefCall
	}
	if assign.MatchString(line) {
		return RefAssignment
	}
	return RefReference
}

func isImportLine(trimmed string) bool {
	for _, prefix := range []string{"import ", "import\t", "from ", "use ", "#include", "require ", "require("} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// contextWindow returns up to n lines either side of index i.
func contextWindow(lines []string, i, n int) []string {
	if n <= 0 {
		return nil
	}
	lo := i - n
	if lo < 0 {
		lo = 0
	}
	hi := i + n + 1
	if hi > len(lines) {
		hi = len(lines)
	}
	out := make([]string, hi-lo)
	copy(out, lines[lo:hi])
	return out
}
