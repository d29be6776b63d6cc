package extract

import (
	"reflect"
	"testing"
	"time"

	"cix/internal/cache"
	"cix/internal/logging"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"main.go", LangGo},
		{"script.py", LangPython},
		{"app.js", LangJavaScript},
		{"component.tsx", LangTypeScript},
		{"lib.rs", LangRust},
		{"Main.java", LangJava},
		{"util.c", LangC},
		{"util.hpp", LangCPP},
		{"model.rb", LangRuby},
		{"index.php", LangPHP},
		{"README.md", LangUnknown},
		{"Makefile", LangUnknown},
		{"dir/nested/FILE.GO", LangGo},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectLanguage(tt.path); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestExtractGo(t *testing.T) {
	content := `package server

import "fmt"

// Server handles requests.
type Server struct {
	addr string
}

// Run starts the server.
// It blocks until shutdown.
func Run(addr string) error {
	fmt.Println(addr)
	return nil
}

var defaultTimeout = 30
`
	symbols := Extract("server.go", content, LangGo)

	byName := map[string]Symbol{}
	for _, s := range symbols {
		byName[s.Name] = s
	}

	if s, ok := byName["fmt"]; !ok || s.Kind != KindImport {
		t.Errorf("expected import fmt, got %+v", byName["fmt"])
	}
	if s, ok := byName["Server"]; !ok || s.Kind != KindClass || s.Line != 6 {
		t.Errorf("expected class Server at line 6, got %+v", s)
	}
	if s, ok := byName["Run"]; !ok || s.Kind != KindFunction {
		t.Errorf("expected function Run, got %+v", s)
	} else {
		if s.Line != 12 {
			t.Errorf("Run.Line = %d, want 12", s.Line)
		}
		if s.EndLine != 15 {
			t.Errorf("Run.EndLine = %d, want 15", s.EndLine)
		}
		if s.Doc != "// Run starts the server.\n// It blocks until shutdown." {
			t.Errorf("Run.Doc = %q", s.Doc)
		}
	}
	if s, ok := byName["defaultTimeout"]; !ok || s.Kind != KindVariable {
		t.Errorf("expected variable defaultTimeout, got %+v", s)
	}
}

func TestExtractPython(t *testing.T) {
	content := `import os
from typing import List

MAX_SIZE = 100

# Greets the caller.
def greet(name):
    message = "hello " + name
    return message

class Greeter:
    def __init__(self):
        self.count = 0
`
	symbols := Extract("greet.py", content, LangPython)

	var names []string
	for _, s := range symbols {
		names = append(names, string(s.Kind)+":"+s.Name)
	}

	want := []string{
		"import:os",
		"import:typing",
		"variable:MAX_SIZE",
		"function:greet",
		"class:Greeter",
		"function:__init__",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("symbols = %v, want %v", names, want)
	}

	for _, s := range symbols {
		if s.Name == "greet" {
			if s.EndLine != 9 {
				t.Errorf("greet.EndLine = %d, want 9 (indent block)", s.EndLine)
			}
			if s.Doc != "# Greets the caller." {
				t.Errorf("greet.Doc = %q", s.Doc)
			}
		}
		if s.Name == "Greeter" && s.EndLine != 13 {
			t.Errorf("Greeter.EndLine = %d, want 13", s.EndLine)
		}
	}
}

func TestExtractPythonIndentedAssignmentNotVariable(t *testing.T) {
	content := "def f():\n    x = 1\n    return x\n"
	symbols := Extract("f.py", content, LangPython)

	for _, s := range symbols {
		if s.Kind == KindVariable {
			t.Errorf("indented assignment should not be a module variable: %+v", s)
		}
	}
}

func TestExtractTypeScript(t *testing.T) {
	content := `import { api } from "./api";
const fs = require("fs");

export interface User {
	name: string;
}

export type ID = string;

export async function fetchUser(id: ID): Promise<User> {
	return api.get(id);
}

export const parse = (raw: string) => JSON.parse(raw);

let counter = 0;
`
	symbols := Extract("user.ts", content, LangTypeScript)

	kinds := map[string]SymbolKind{}
	for _, s := range symbols {
		kinds[s.Name] = s.Kind
	}

	if kinds["./api"] != KindImport {
		t.Errorf("./api = %v, want import", kinds["./api"])
	}
	if kinds["fs"] != KindImport {
		t.Errorf("require should classify as import, got %v", kinds["fs"])
	}
	if kinds["User"] != KindClass {
		t.Errorf("interface User = %v, want class", kinds["User"])
	}
	if kinds["ID"] != KindClass {
		t.Errorf("type alias ID = %v, want class", kinds["ID"])
	}
	if kinds["fetchUser"] != KindFunction {
		t.Errorf("fetchUser = %v, want function", kinds["fetchUser"])
	}
	if kinds["parse"] != KindFunction {
		t.Errorf("arrow function parse = %v, want function", kinds["parse"])
	}
	if kinds["counter"] != KindVariable {
		t.Errorf("counter = %v, want variable", kinds["counter"])
	}
}

func TestExtractRust(t *testing.T) {
	content := `use std::collections::HashMap;

pub struct Cache {
    items: HashMap<String, String>,
}

pub fn lookup(key: &str) -> Option<String> {
    None
}

const LIMIT: usize = 10;
`
	symbols := Extract("cache.rs", content, LangRust)

	kinds := map[string]SymbolKind{}
	for _, s := range symbols {
		kinds[s.Name] = s.Kind
	}

	if kinds["std::collections::HashMap"] != KindImport {
		t.Errorf("use = %v, want import", kinds["std::collections::HashMap"])
	}
	if kinds["Cache"] != KindClass {
		t.Errorf("struct Cache = %v, want class", kinds["Cache"])
	}
	if kinds["lookup"] != KindFunction {
		t.Errorf("fn lookup = %v, want function", kinds["lookup"])
	}
	if kinds["LIMIT"] != KindVariable {
		t.Errorf("const LIMIT = %v, want variable", kinds["LIMIT"])
	}
}

func TestExtractC(t *testing.T) {
	content := `#include <stdio.h>

/* Adds two numbers. */
int add(int a, int b) {
    return a + b;
}

static int counter = 0;
`
	symbols := Extract("math.c", content, LangC)

	kinds := map[string]SymbolKind{}
	var addSym Symbol
	for _, s := range symbols {
		kinds[s.Name] = s.Kind
		if s.Name == "add" {
			addSym = s
		}
	}

	if kinds["stdio.h"] != KindImport {
		t.Errorf("#include = %v, want import", kinds["stdio.h"])
	}
	if kinds["add"] != KindFunction {
		t.Errorf("add = %v, want function", kinds["add"])
	}
	if addSym.Doc != "/* Adds two numbers. */" {
		t.Errorf("add.Doc = %q", addSym.Doc)
	}
	if kinds["counter"] != KindVariable {
		t.Errorf("counter = %v, want variable", kinds["counter"])
	}
}

func TestExtractUnsupportedLanguage(t *testing.T) {
	symbols := Extract("readme.md", "# Title\nsome text\n", LangUnknown)
	if len(symbols) != 0 {
		t.Errorf("unsupported language should yield no symbols, got %d", len(symbols))
	}
}

func TestExtractDeterminism(t *testing.T) {
	content := `package p

func a() {}
func b() {}

var x = 1
`
	first := Extract("p.go", content, LangGo)
	for i := 0; i < 5; i++ {
		again := Extract("p.go", content, LangGo)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("extraction is not deterministic: run %d differs", i)
		}
	}
}

func TestExtractDeclarationOrder(t *testing.T) {
	content := "func zebra() {}\nfunc alpha() {}\nfunc mango() {}\n"
	symbols := Extract("order.go", content, LangGo)

	if len(symbols) != 3 {
		t.Fatalf("got %d symbols, want 3", len(symbols))
	}
	want := []string{"zebra", "alpha", "mango"}
	for i, s := range symbols {
		if s.Name != want[i] {
			t.Errorf("symbols[%d] = %s, want %s (declaration order)", i, s.Name, want[i])
		}
	}
}

func TestBraceEndNestedBlocks(t *testing.T) {
	content := `func outer() {
	if true {
		for {
		}
	}
}
`
	symbols := Extract("nested.go", content, LangGo)
	if len(symbols) != 1 {
		t.Fatalf("got %d symbols, want 1", len(symbols))
	}
	if symbols[0].EndLine != 6 {
		t.Errorf("EndLine = %d, want 6", symbols[0].EndLine)
	}
}

func TestContentHashStable(t *testing.T) {
	a := ContentHash([]byte("hello"))
	b := ContentHash([]byte("hello"))
	c := ContentHash([]byte("hello!"))

	if a != b {
		t.Error("identical content should hash identically")
	}
	if a == c {
		t.Error("different content should hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestCachingExtractorMemoizes(t *testing.T) {
	c := cache.New("symbols", 100, time.Minute)
	e := NewCachingExtractor(c, logging.Discard())

	content := []byte("func hello() {}\n")

	first := e.Extract("a.go", content, LangGo)
	second := e.Extract("a.go", content, LangGo)

	if e.Extractions() != 1 {
		t.Errorf("Extractions() = %d, want 1 (second call should hit the cache)", e.Extractions())
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached result should equal the original")
	}

	// Changed content forces re-extraction
	e.Extract("a.go", []byte("func world() {}\n"), LangGo)
	if e.Extractions() != 2 {
		t.Errorf("Extractions() = %d, want 2 after content change", e.Extractions())
	}
}

func TestCachingExtractorNilCache(t *testing.T) {
	e := NewCachingExtractor(nil, logging.Discard())

	symbols := e.Extract("a.go", []byte("func hello() {}\n"), LangGo)
	if len(symbols) != 1 || symbols[0].Name != "hello" {
		t.Errorf("nil cache should still extract, got %+v", symbols)
	}
}
