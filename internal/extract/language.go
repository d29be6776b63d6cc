// Package extract discovers symbol declarations in source text.
//
// Extraction is line-oriented pattern matching per language, not parsing.
// False negatives on unusual syntax are acceptable; crashes are not. For a
// fixed (content, language) input the output is identical across calls,
// in declaration order, because downstream consumers diff results by
// content hash.
package extract

import (
	"path/filepath"
	"strings"
)

// Language identifies a supported source language. The set is closed:
// every language has one extraction strategy, and unsupported files fall
// through to LangUnknown, which extracts nothing.
type Language int

const (
	LangUnknown Language = iota
	LangGo
	LangPython
	LangJavaScript
	LangTypeScript
	LangRust
	LangJava
	LangC
	LangCPP
	LangRuby
	LangPHP
)

// String returns the language name
func (l Language) String() string {
	switch l {
	case LangGo:
		return "go"
	case LangPython:
		return "python"
	case LangJavaScript:
		return "javascript"
	case LangTypeScript:
		return "typescript"
	case LangRust:
		return "rust"
	case LangJava:
		return "java"
	case LangC:
		return "c"
	case LangCPP:
		return "cpp"
	case LangRuby:
		return "ruby"
	case LangPHP:
		return "php"
	default:
		return "unknown"
	}
}

var extensionLanguages = map[string]Language{
	".go":   LangGo,
	".py":   LangPython,
	".pyw":  LangPython,
	".js":   LangJavaScript,
	".jsx":  LangJavaScript,
	".mjs":  LangJavaScript,
	".ts":   LangTypeScript,
	".tsx":  LangTypeScript,
	".rs":   LangRust,
	".java": LangJava,
	".c":    LangC,
	".h":    LangC,
	".cpp":  LangCPP,
	".cc":   LangCPP,
	".cxx":  LangCPP,
	".hpp":  LangCPP,
	".rb":   LangRuby,
	".php":  LangPHP,
}

// DetectLanguage determines the language from the file extension.
// Unsupported extensions return LangUnknown.
func DetectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return LangUnknown
}

// SupportedExtensions returns every extension with an extraction strategy.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		exts = append(exts, ext)
	}
	return exts
}
