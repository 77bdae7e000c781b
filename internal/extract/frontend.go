package extract

import (
	"regexp"
	"strings"

	"github.com/amansingh-swe/EngAi/internal/domain"
)

// fileBlockRe matches fenced blocks tagged "language:relative/path", the
// format the frontend generator is prompted to emit, e.g.
// a javascript block tagged src/App.jsx or a json block tagged package.json.
var fileBlockRe = regexp.MustCompile("(?s)```(?:javascript|jsx|js|typescript|tsx|ts|json|css|html):([^\n]+)\n(.*?)```")

var validExtensions = []string{".jsx", ".js", ".json", ".html", ".css", ".tsx", ".ts"}

var knownConfigFiles = map[string]bool{
	"package.json":  true,
	"tsconfig.json": true,
}

// commonWords guards against false-positive tag parsing: a "path" that is a
// short English word came from prose, not a file tag.
var commonWords = map[string]bool{
	"on": true, "off": true, "in": true, "at": true, "to": true,
	"as": true, "if": true, "of": true, "is": true, "it": true,
	"we": true, "do": true, "go": true, "no": true,
}

// minFileContentLen drops blocks that are too small to be a real file.
const minFileContentLen = 10

// FrontendBundle extracts a multi-file frontend bundle from LLM output. Each
// valid tagged block becomes one entry keyed by its normalized relative path.
// When zero valid blocks are found the whole text is treated as a single
// default component file.
func FrontendBundle(output string) domain.FileBundle {
	bundle := domain.FileBundle{}
	for _, m := range fileBlockRe.FindAllStringSubmatch(output, -1) {
		path := strings.TrimSpace(m[1])
		content := strings.TrimSpace(m[2])
		if len(content) < minFileContentLen {
			continue
		}
		if path == "" {
			path = "src/App.jsx"
		}
		path, ok := normalizeFrontendPath(path)
		if !ok {
			continue
		}
		bundle[path] = content
	}
	if len(bundle) == 0 {
		return domain.FileBundle{"src/App.jsx": Code(output)}
	}
	return bundle
}

// normalizeFrontendPath validates a tagged path and roots bare filenames
// under src/ unless they belong at the bundle root.
func normalizeFrontendPath(path string) (string, bool) {
	path = strings.TrimSpace(strings.ReplaceAll(strings.TrimLeft(path, "/"), "frontend/", ""))

	hasValidExt := false
	for _, ext := range validExtensions {
		if strings.HasSuffix(path, ext) {
			hasValidExt = true
			break
		}
	}
	if !hasValidExt && !knownConfigFiles[path] {
		return "", false
	}
	if len(path) < 5 && !knownConfigFiles[path] {
		return "", false
	}
	if commonWords[strings.ToLower(path)] {
		return "", false
	}

	switch {
	case knownConfigFiles[path]:
		// Root-level config stays at the root.
	case strings.HasPrefix(path, "public/") || strings.HasPrefix(path, "src/"):
		// Already rooted under a recognized top-level directory.
	case !strings.Contains(path, "/") && strings.HasSuffix(path, ".json"):
		// Other root-level json config stays at the root.
	default:
		path = "src/" + path
	}
	return path, true
}
