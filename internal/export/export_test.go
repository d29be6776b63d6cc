package export

import (
	"os"
	"path/filepath"
	"testing"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	"cix/internal/config"
	"cix/internal/extract"
	"cix/internal/index"
	"cix/internal/logging"
)

func buildIndex(t *testing.T) (*index.Index, string) {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"svc.go":  "// Server handles requests.\nfunc Serve() {}\n",
		"util.py": "def helper():\n    pass\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.DefaultConfig().Index
	ix := index.New(dir, cfg, extract.NewCachingExtractor(nil, logging.Discard()), nil, logging.Discard())
	for name := range files {
		if _, err := ix.IndexFile(filepath.Join(dir, name)); err != nil {
			t.Fatalf("IndexFile(%s): %v", name, err)
		}
	}
	return ix, dir
}

func TestBuild(t *testing.T) {
	ix, _ := buildIndex(t)

	scipIndex := Build(ix)

	if scipIndex.Metadata == nil || scipIndex.Metadata.ToolInfo.Name != "cix" {
		t.Fatalf("metadata = %+v", scipIndex.Metadata)
	}
	if len(scipIndex.Documents) != 2 {
		t.Fatalf("documents = %d, want 2", len(scipIndex.Documents))
	}

	// Path order
	if scipIndex.Documents[0].RelativePath != "svc.go" {
		t.Errorf("documents[0] = %s, want svc.go", scipIndex.Documents[0].RelativePath)
	}
	if scipIndex.Documents[0].Language != "go" {
		t.Errorf("language = %s, want go", scipIndex.Documents[0].Language)
	}

	doc := scipIndex.Documents[0]
	if len(doc.Occurrences) != 1 || len(doc.Symbols) != 1 {
		t.Fatalf("svc.go occurrences=%d symbols=%d, want 1/1", len(doc.Occurrences), len(doc.Symbols))
	}

	occ := doc.Occurrences[0]
	if occ.SymbolRoles&int32(scippb.SymbolRole_Definition) == 0 {
		t.Error("occurrence should carry the definition role")
	}
	if occ.Range[0] != 1 {
		t.Errorf("range line = %d, want 1 (zero-based)", occ.Range[0])
	}

	info := doc.Symbols[0]
	if info.Kind != scippb.SymbolInformation_Function {
		t.Errorf("kind = %v, want Function", info.Kind)
	}
	if info.DisplayName != "Serve" {
		t.Errorf("display name = %s", info.DisplayName)
	}
	if len(info.Documentation) != 1 {
		t.Errorf("doc comment should be carried: %v", info.Documentation)
	}
}

func TestWriteSCIPRoundTrip(t *testing.T) {
	ix, _ := buildIndex(t)
	out := filepath.Join(t.TempDir(), "index.scip")

	if err := WriteSCIP(ix, out); err != nil {
		t.Fatalf("WriteSCIP: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	var decoded scippb.Index
	if err := proto.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("written file does not decode: %v", err)
	}
	if len(decoded.Documents) != 2 {
		t.Errorf("decoded documents = %d, want 2", len(decoded.Documents))
	}
}

func TestSymbolNameDescriptors(t *testing.T) {
	tests := []struct {
		kind   extract.SymbolKind
		suffix string
	}{
		{extract.KindFunction, "()."},
		{extract.KindClass, "#"},
		{extract.KindVariable, "."},
	}

	for _, tt := range tests {
		name := symbolName("pkg/file.go", extract.Symbol{Name: "X", Kind: tt.kind})
		if name != "cix . . . pkg/file.go/X"+tt.suffix {
			t.Errorf("%s descriptor: got %q", tt.kind, name)
		}
	}
}
