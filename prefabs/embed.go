package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript reads a tengo script, preferring a disk copy under
// prefabs/scripts so edits apply without a rebuild.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

//go:embed variants/*.yaml
var VariantsFS embed.FS

// Load reads a variant file, preferring a disk copy under prefabs/variants.
func Load(name string) ([]byte, error) {
	clean := cleanVariantPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return VariantsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanVariantPath(name)
	info, err := os.Stat(diskPrefabPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanVariantPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "variants/"); ok {
		s = after
	}
	if path.Ext(s) == "" {
		s += ".yaml"
	}
	return "variants/" + s
}

func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}

	s := filepath.ToSlash(p)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
