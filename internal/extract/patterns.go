package extract

import "regexp"

// extentStyle selects how a declaration's block extent is computed
type extentStyle int

const (
	extentNone extentStyle = iota
	extentBraces
	extentIndent
)

// pattern matches one declaration shape. The symbol name is the first
// non-empty capture group.
type pattern struct {
	kind SymbolKind
	re   *regexp.Regexp
}

// languageSpec holds the extraction strategy for one language. Patterns
// are tried in order; the first match wins for a line.
type languageSpec struct {
	patterns      []pattern
	commentPrefix []string // line prefixes that count as comment lines
	extent        extentStyle
	topLevelOnly  map[SymbolKind]bool // kinds only recognized at zero indentation
}

var languageSpecs = map[Language]*languageSpec{
	LangGo: {
		patterns: []pattern{
			{KindImport, regexp.MustCompile(`^\s*import\s+(?:[\w.]+\s+)?"([^"]+)"`)},
			{KindFunction, regexp.MustCompile(`^func\s+(?:\([^)]+\)\s+)?([A-Za-z_]\w*)\s*\(`)},
			{KindClass, regexp.MustCompile(`^type\s+([A-Za-z_]\w*)\s+(?:struct|interface)\b`)},
			{KindVariable, regexp.MustCompile(`^(?:var|const)\s+([A-Za-z_]\w*)`)},
		},
		commentPrefix: []string{"//"},
		extent:        extentBraces,
	},
	LangPython: {
		patterns: []pattern{
			{KindImport, regexp.MustCompile(`^\s*import\s+([\w.]+)`)},
			{KindImport, regexp.MustCompile(`^\s*from\s+([\w.]+)\s+import\b`)},
			{KindFunction, regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)},
			{KindClass, regexp.MustCompile(`^\s*class\s+([A-Za-z_]\w*)\s*[(:]`)},
			{KindVariable, regexp.MustCompile(`^([A-Za-z_]\w*)\s*(?::[^=]+)?=[^=]`)},
		},
		commentPrefix: []string{"#"},
		extent:        extentIndent,
		topLevelOnly:  map[SymbolKind]bool{KindVariable: true},
	},
	LangJavaScript: {
		patterns:      jsPatterns,
		commentPrefix: []string{"//", "/*", "*", "*/"},
		extent:        extentBraces,
	},
	LangTypeScript: {
		patterns: append([]pattern{
			{KindClass, regexp.MustCompile(`^\s*(?:export\s+)?(?:declare\s+)?(?:interface|enum)\s+([A-Za-z_$][\w$]*)`)},
			{KindClass, regexp.MustCompile(`^\s*(?:export\s+)?type\s+([A-Za-z_$][\w$]*)\s*=`)},
		}, jsPatterns...),
		commentPrefix: []string{"//", "/*", "*", "*/"},
		extent:        extentBraces,
	},
	LangRust: {
		patterns: []pattern{
			{KindImport, regexp.MustCompile(`^\s*(?:pub\s+)?use\s+([\w:]+)`)},
			{KindFunction, regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?(?:unsafe\s+)?(?:extern\s+"[^"]*"\s+)?fn\s+([A-Za-z_]\w*)`)},
			{KindClass, regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:struct|enum|trait)\s+([A-Za-z_]\w*)`)},
			{KindVariable, regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:static|const)\s+(?:mut\s+)?([A-Za-z_]\w*)`)},
			{KindVariable, regexp.MustCompile(`^\s*let\s+(?:mut\s+)?([A-Za-z_]\w*)`)},
		},
		commentPrefix: []string{"//", "///"},
		extent:        extentBraces,
	},
	LangJava: {
		patterns: []pattern{
			{KindImport, regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+)`)},
			{KindClass, regexp.MustCompile(`^\s*(?:(?:public|protected|private|abstract|final|static)\s+)*(?:class|interface|enum|record)\s+([A-Za-z_]\w*)`)},
			{KindFunction, regexp.MustCompile(`^\s*(?:(?:public|protected|private|static|final|abstract|synchronized|native)\s+)+[\w<>\[\],.\s]*?([A-Za-z_]\w*)\s*\([^;]*$`)},
			{KindVariable, regexp.MustCompile(`^\s*(?:(?:public|protected|private|static|final)\s+)+[\w<>\[\],.]+\s+([A-Za-z_]\w*)\s*[=;]`)},
		},
		commentPrefix: []string{"//", "/*", "*", "*/"},
		extent:        extentBraces,
	},
	LangC: {
		patterns:      cPatterns,
		commentPrefix: []string{"//", "/*", "*", "*/"},
		extent:        extentBraces,
	},
	LangCPP: {
		patterns: append([]pattern{
			{KindClass, regexp.MustCompile(`^\s*(?:template\s*<[^>]*>\s*)?(?:class|struct)\s+([A-Za-z_]\w*)\s*[:{]`)},
		}, cPatterns...),
		commentPrefix: []string{"//", "/*", "*", "*/"},
		extent:        extentBraces,
	},
	LangRuby: {
		patterns: []pattern{
			{KindImport, regexp.MustCompile(`^\s*require(?:_relative)?\s+['"]([^'"]+)['"]`)},
			{KindFunction, regexp.MustCompile(`^\s*def\s+(?:self\.)?([A-Za-z_]\w*[?!]?)`)},
			{KindClass, regexp.MustCompile(`^\s*(?:class|module)\s+([A-Z]\w*)`)},
			{KindVariable, regexp.MustCompile(`^([A-Z][A-Z0-9_]*)\s*=[^=]`)},
		},
		commentPrefix: []string{"#"},
		extent:        extentIndent,
	},
	LangPHP: {
		patterns: []pattern{
			{KindImport, regexp.MustCompile(`^\s*(?:require|require_once|include|include_once)\s*\(?\s*['"]([^'"]+)['"]`)},
			{KindImport, regexp.MustCompile(`^\s*use\s+([\w\\]+)`)},
			{KindFunction, regexp.MustCompile(`^\s*(?:(?:public|protected|private|static|abstract|final)\s+)*function\s+&?([A-Za-z_]\w*)\s*\(`)},
			{KindClass, regexp.MustCompile(`^\s*(?:(?:abstract|final)\s+)*(?:class|interface|trait)\s+([A-Za-z_]\w*)`)},
			{KindVariable, regexp.MustCompile(`^\s*\$([A-Za-z_]\w*)\s*=[^=]`)},
		},
		commentPrefix: []string{"//", "#", "/*", "*", "*/"},
		extent:        extentBraces,
	},
}

// jsPatterns is shared between JavaScript and TypeScript. Order matters:
// imports before variables so `const x = require(...)` classifies as an
// import, and arrow functions before plain variable declarations.
var jsPatterns = []pattern{
	{KindImport, regexp.MustCompile(`^\s*import\b[^'"]*?from\s+['"]([^'"]+)['"]`)},
	{KindImport, regexp.MustCompile(`^\s*import\s+['"]([^'"]+)['"]`)},
	{KindImport, regexp.MustCompile(`^\s*(?:const|let|var)\s+[\w${},\s]+\s*=\s*require\(\s*['"]([^'"]+)['"]`)},
	{KindFunction, regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*\(`)},
	{KindFunction, regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*=>`)},
	{KindClass, regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`)},
	{KindVariable, regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)`)},
}

// cPatterns is shared between C and C++.
var cPatterns = []pattern{
	{KindImport, regexp.MustCompile(`^\s*#\s*include\s*[<"]([^>"]+)[>"]`)},
	{KindFunction, regexp.MustCompile(`^(?:[A-Za-z_]\w*[\s\*]+)+([A-Za-z_]\w*)\s*\([^;]*$`)},
	{KindVariable, regexp.MustCompile(`^(?:(?:static|const|extern|unsigned|signed)\s+)*[A-Za-z_]\w*[\s\*]+([A-Za-z_]\w*)\s*=[^=]`)},
}
