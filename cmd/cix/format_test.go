package main

import (
	"encoding/json"
	"strings"
	"testing"

	"cix/internal/extract"
	"cix/internal/index"
	"cix/internal/query"
)

func TestFormatResponseJSON(t *testing.T) {
	resp := &query.SearchResponse{
		Query:      "run",
		TotalFound: 1,
		Results: []index.SearchResult{
			{Symbol: extract.Symbol{Name: "Run", Kind: extract.KindFunction, FilePath: "main.go", Line: 3}},
		},
	}

	out, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["query"] != "run" {
		t.Errorf("query = %v", decoded["query"])
	}
}

func TestFormatResponseHuman(t *testing.T) {
	resp := &query.SearchResponse{
		Query:      "run",
		TotalFound: 1,
		Truncated:  true,
		Results: []index.SearchResult{
			{Symbol: extract.Symbol{Name: "Run", Kind: extract.KindFunction, FilePath: "main.go", Line: 3}},
		},
	}

	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Run") || !strings.Contains(out, "main.go:3") {
		t.Errorf("human output missing hit: %q", out)
	}
	if !strings.Contains(out, "truncated") {
		t.Errorf("human output should flag truncation: %q", out)
	}
}

func TestFormatResponseUnsupported(t *testing.T) {
	if _, err := FormatResponse(struct{}{}, "yaml"); err == nil {
		t.Error("unsupported format should error")
	}
}

func TestFormatRefsHuman(t *testing.T) {
	resp := &query.ReferencesResponse{
		Symbol:     "Render",
		TotalFound: 1,
		References: []index.Reference{
			{FilePath: "a.go", Line: 2, Kind: index.RefCall, Text: "Render()"},
		},
	}

	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[call]") || !strings.Contains(out, "a.go:2") {
		t.Errorf("refs output = %q", out)
	}
}
