package corpus

import (
	"path/filepath"
	"sort"
	"strings"
)

var extensionMap = buildExtensionMap()

func buildExtensionMap() map[string]string {
	m := make(map[string]string, 48)
	add := func(lang string, exts ...string) {
		for _, ext := range exts {
			m[ext] = lang
		}
	}

	add("python", ".py", ".pyw")
	add("javascript", ".js", ".jsx", ".mjs", ".cjs")
	add("typescript", ".ts", ".mts", ".tsx")
	add("go", ".go")
	add("rust", ".rs")
	add("java", ".java")
	add("c", ".c", ".h")
	add("cpp", ".cpp", ".hpp", ".cc", ".cxx", ".hxx")
	add("csharp", ".cs")
	add("ruby", ".rb")
	add("php", ".php")
	add("swift", ".swift")
	add("kotlin", ".kt", ".kts")
	add("scala", ".scala", ".sc")
	add("bash", ".sh", ".bash")
	add("lua", ".lua")
	add("haskell", ".hs")
	add("elixir", ".ex", ".exs")
	add("sql", ".sql")
	add("r", ".r", ".R")
	return m
}

// DetectLanguage returns the language for path based on its extension, or
// "" when the extension is unknown.
func DetectLanguage(path string) string {
	return extensionMap[filepath.Ext(path)]
}

// KnownExtensions returns every extension with a language, sorted.
func KnownExtensions() []string {
	out := make([]string, 0, len(extensionMap))
	for ext := range extensionMap {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// NormalizeExtensions makes sure every entry starts with a dot, so "py" and
// ".py" are equivalent on the command line. Blank entries are dropped.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
