package ignore

import "testing"

func TestMatches(t *testing.T) {
	patterns := []string{"*.log", "node_modules/**", ".git/**", "dist/**"}

	tests := []struct {
		path string
		want bool
	}{
		{"debug.log", true},
		{"src/server.log", true},
		{"node_modules/pkg/index.js", true},
		{".git/config", true},
		{"dist/bundle.js", true},
		{"main.go", false},
		{"src/app.ts", false},
		{"distant/file.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Matches(patterns, tt.path); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestMatchesEmptyPatterns(t *testing.T) {
	if Matches(nil, "anything.go") {
		t.Error("no patterns should match nothing")
	}
}

func TestAllowedExtension(t *testing.T) {
	exts := []string{".go", ".py"}

	tests := []struct {
		path string
		want bool
	}{
		{"main.go", true},
		{"MAIN.GO", true},
		{"script.py", true},
		{"notes.txt", false},
		{"binary", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := AllowedExtension(exts, tt.path); got != tt.want {
				t.Errorf("AllowedExtension(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestAllowedExtensionEmptyList(t *testing.T) {
	if !AllowedExtension(nil, "anything.xyz") {
		t.Error("empty allow-list should permit everything")
	}
}
