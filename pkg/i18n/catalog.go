package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var builtin embed.FS

// Builtin returns the embedded message catalogs shipped with the service.
func Builtin() fs.FS {
	sub, _ := fs.Sub(builtin, "locales")
	return sub
}

// loadCatalogs reads every <tag>.yaml file at the root of fsys and flattens
// nested keys into dot-separated paths.
func loadCatalogs(fsys fs.FS) (map[language.Tag]map[string]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}

	out := make(map[language.Tag]map[string]string)
	for _, e := range entries {
		name := e.Name()
		ext := path.Ext(name)
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(name, ext))
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidLanguage, name, err)
		}

		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrInvalidCatalog, name, err)
		}

		flat := make(map[string]string)
		flatten("", tree, flat)
		out[tag] = flat
	}

	if len(out) == 0 {
		return nil, ErrNoCatalogs
	}
	return out, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
