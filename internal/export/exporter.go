// Package export writes the symbol index as a SCIP protobuf file so other
// tooling can consume it. Only definition occurrences are emitted; the
// reference scanner works per query and its hits are not materialized.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	"cix/internal/extract"
	"cix/internal/index"
	"cix/internal/version"
)

// WriteSCIP serializes the index's current entries to a SCIP index file at
// outPath. Documents appear in path order.
func WriteSCIP(ix *index.Index, outPath string) error {
	scipIndex := Build(ix)

	data, err := proto.Marshal(scipIndex)
	if err != nil {
		return fmt.Errorf("encoding scip index: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("writing scip index: %w", err)
	}
	return nil
}

// Build converts the index's entries into a SCIP index message.
func Build(ix *index.Index) *scippb.Index {
	root := ix.Root()

	scipIndex := &scippb.Index{
		Metadata: &scippb.Metadata{
			Version: scippb.ProtocolVersion_UnspecifiedProtocolVersion,
			ToolInfo: &scippb.ToolInfo{
				Name:    "cix",
				Version: version.Version,
			},
			ProjectRoot:          "file://" + filepath.ToSlash(root),
			TextDocumentEncoding: scippb.TextEncoding_UTF8,
		},
	}

	for _, entry := range ix.Snapshot() {
		doc := buildDocument(root, entry)
		if doc != nil {
			scipIndex.Documents = append(scipIndex.Documents, doc)
		}
	}
	return scipIndex
}

func buildDocument(root string, entry *index.FileEntry) *scippb.Document {
	rel, err := filepath.Rel(root, entry.Path)
	if err != nil {
		rel = entry.Path
	}
	rel = filepath.ToSlash(rel)

	doc := &scippb.Document{
		RelativePath: rel,
		Language:     extract.DetectLanguage(entry.Path).String(),
	}

	// Stable occurrence order within a document
	symbols := make([]extract.Symbol, len(entry.Symbols))
	copy(symbols, entry.Symbols)
	sort.SliceStable(symbols, func(i, j int) bool {
		return symbols[i].Line < symbols[j].Line
	})

	for _, sym := range symbols {
		name := symbolName(rel, sym)

		doc.Occurrences = append(doc.Occurrences, &scippb.Occurrence{
			// SCIP ranges are zero-based [line, start, end]
			Range:       []int32{int32(sym.Line - 1), 0, int32(len(sym.Name))},
			Symbol:      name,
			SymbolRoles: int32(scippb.SymbolRole_Definition),
		})

		info := &scippb.SymbolInformation{
			Symbol:      name,
			Kind:        symbolKind(sym.Kind),
			DisplayName: sym.Name,
		}
		if sym.Doc != "" {
			info.Documentation = []string{sym.Doc}
		}
		doc.Symbols = append(doc.Symbols, info)
	}

	return doc
}

// symbolName builds a SCIP symbol identifier. Descriptors follow the
// function/type/variable suffix conventions from the SCIP grammar.
func symbolName(rel string, sym extract.Symbol) string {
	pkg := strings.ReplaceAll(rel, " ", "_")

	var descriptor string
	switch sym.Kind {
	case extract.KindFunction:
		descriptor = sym.Name + "()."
	case extract.KindClass:
		descriptor = sym.Name + "#"
	default:
		descriptor = sym.Name + "."
	}
	return fmt.Sprintf("cix . . . %s/%s", pkg, descriptor)
}

func symbolKind(kind extract.SymbolKind) scippb.SymbolInformation_Kind {
	switch kind {
	case extract.KindFunction:
		return scippb.SymbolInformation_Function
	case extract.KindClass:
		return scippb.SymbolInformation_Class
	case extract.KindVariable:
		return scippb.SymbolInformation_Variable
	case extract.KindImport:
		return scippb.SymbolInformation_Namespace
	default:
		return scippb.SymbolInformation_UnspecifiedKind
	}
}
