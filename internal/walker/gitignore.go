package walker

import (
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// ignoreLayer is the compiled .gitignore of one directory.
type ignoreLayer struct {
	dir    string
	parser *ignore.GitIgnore
}

// loadIgnoreLayer compiles dir/.gitignore. The layer has a nil parser when the
// file is missing or unreadable.
func loadIgnoreLayer(dir string) ignoreLayer {
	parser, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return ignoreLayer{dir: dir}
	}
	return ignoreLayer{dir: dir, parser: parser}
}

// childLayers returns a copy of parent with dir's own layer appended. Parsers are
// immutable, so copies share them.
func childLayers(parent []ignoreLayer, dir string) []ignoreLayer {
	layers := make([]ignoreLayer, len(parent)+1)
	copy(layers, parent)
	layers[len(parent)] = loadIgnoreLayer(dir)
	return layers
}

// isIgnoredByLayers checks if a path should be ignored by any layer in the slice.
func isIgnoredByLayers(layers []ignoreLayer, fullPath string, isDir bool) bool {
	for _, layer := range layers {
		if layer.parser == nil {
			continue
		}
		rel, err := filepath.Rel(layer.dir, fullPath)
		if err != nil {
			continue
		}
		if isDir {
			rel += "/"
		}
		if layer.parser.MatchesPath(rel) {
			return true
		}
	}
	return false
}
