package extract

// SymbolKind classifies a declaration site
type SymbolKind string

const (
	KindFunction SymbolKind = "function"
	KindClass    SymbolKind = "class"
	KindVariable SymbolKind = "variable"
	KindImport   SymbolKind = "import"
)

// ValidKind reports whether s names a known symbol kind.
func ValidKind(s string) bool {
	switch SymbolKind(s) {
	case KindFunction, KindClass, KindVariable, KindImport:
		return true
	}
	return false
}

// Symbol is one declaration site. A symbol is uniquely identified by
// (FilePath, Line, Name); the same name may appear at multiple sites and
// every site is retained.
type Symbol struct {
	Name      string     `json:"name"`
	Kind      SymbolKind `json:"kind"`
	FilePath  string     `json:"filePath"`
	Line      int        `json:"line"` // 1-based
	EndLine   int        `json:"endLine"`
	Signature string     `json:"signature"`
	Doc       string     `json:"doc,omitempty"`
}
