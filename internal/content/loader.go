package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed packs/*.yaml
var builtinPacks embed.FS

// FSLoader reads region packs from a directory of YAML files, one region per
// file. Files are loaded in name order so pack authors control map order.
type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// LoadDir loads every *.yaml region under root.
func (l *FSLoader) LoadDir(root string) (*Registry, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	regions := make([]Region, 0, len(names))
	for _, name := range names {
		region, err := readRegion(os.DirFS(root), name)
		if err != nil {
			return nil, fmt.Errorf("load region %s: %w", filepath.Join(root, name), err)
		}
		regions = append(regions, region)
	}
	return NewRegistry(regions)
}

// LoadBuiltin loads the region packs compiled into the binary.
func (l *FSLoader) LoadBuiltin() (*Registry, error) {
	names, err := fs.Glob(builtinPacks, "packs/*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	regions := make([]Region, 0, len(names))
	for _, name := range names {
		region, err := readRegion(builtinPacks, name)
		if err != nil {
			return nil, fmt.Errorf("load builtin region %s: %w", name, err)
		}
		regions = append(regions, region)
	}
	return NewRegistry(regions)
}

// Load prefers a content directory when one is given and falls back to the
// builtin packs otherwise.
func (l *FSLoader) Load(contentDir string) (*Registry, error) {
	if strings.TrimSpace(contentDir) != "" {
		return l.LoadDir(contentDir)
	}
	return l.LoadBuiltin()
}

func readRegion(fsys fs.FS, name string) (Region, error) {
	var region Region
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return region, err
	}
	if err := yaml.Unmarshal(b, &region); err != nil {
		return region, err
	}
	if err := region.Validate(); err != nil {
		return region, err
	}
	return region, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
