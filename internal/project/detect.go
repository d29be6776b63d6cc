// Package project inspects a source tree's build manifests to describe
// what kind of project it is. Detection is advisory: it feeds status
// output and sensible indexing defaults, never hard decisions.
package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Info describes a detected project.
type Info struct {
	Name      string   `json:"name,omitempty"`
	Languages []string `json:"languages"`
}

// manifestProbe ties a build file to the language it implies. TOML
// manifests get parsed for the project name; the rest just witness the
// language.
type manifestProbe struct {
	file     string
	language string
	name     func(path string) string
}

var probes = []manifestProbe{
	{"go.mod", "go", goModName},
	{"Cargo.toml", "rust", cargoName},
	{"pyproject.toml", "python", pyprojectName},
	{"setup.py", "python", nil},
	{"requirements.txt", "python", nil},
	{"package.json", "javascript", nil},
	{"tsconfig.json", "typescript", nil},
	{"pom.xml", "java", nil},
	{"build.gradle", "java", nil},
	{"Gemfile", "ruby", nil},
	{"composer.json", "php", nil},
	{"Makefile", "c", nil},
}

// Detect probes root's manifests. Languages come back sorted; the name is
// taken from the first manifest that declares one.
func Detect(root string) Info {
	info := Info{}
	seen := map[string]bool{}

	for _, probe := range probes {
		path := filepath.Join(root, probe.file)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		if !seen[probe.language] {
			seen[probe.language] = true
			info.Languages = append(info.Languages, probe.language)
		}
		if info.Name == "" && probe.name != nil {
			info.Name = probe.name(path)
		}
	}

	sort.Strings(info.Languages)
	return info
}

type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

func cargoName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return ""
	}
	return m.Package.Name
}

type pyprojectManifest struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name string `toml:"name"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func pyprojectName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var m pyprojectManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return ""
	}
	if m.Project.Name != "" {
		return m.Project.Name
	}
	return m.Tool.Poetry.Name
}

// goModName reads the module path from go.mod's module directive.
func goModName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == "module" {
			return filepath.Base(fields[1])
		}
	}
	return ""
}
