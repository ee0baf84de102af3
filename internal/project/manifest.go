package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"storyscript/internal/diag"
)

// Manifest — разобранный story.toml.
type Manifest struct {
	Path string // путь к самому story.toml
	Root string // каталог манифеста

	Name           string
	Entry          string // абсолютный путь к файлу или каталогу историй
	MaxDiagnostics int    // 0 — не задано
	Jobs           int    // 0 — не задано
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing in story.toml.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is empty.
	ErrPackageNameMissing = errors.New("missing [package].name")
	// ErrCheckEntryMissing indicates that [check].entry is missing.
	ErrCheckEntryMissing = errors.New("missing [check].entry")
)

// ManifestError оборачивает ошибку манифеста вместе с кодом диагностики.
type ManifestError struct {
	Path string
	Code diag.Code
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Code.ID(), e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Check struct {
		Entry          string `toml:"entry"`
		MaxDiagnostics int    `toml:"max_diagnostics"`
		Jobs           int    `toml:"jobs"`
	} `toml:"check"`
}

func invalid(path string, err error) error {
	return &ManifestError{Path: path, Code: diag.ProjManifestInvalid, Err: err}
}

// LoadManifest parses story.toml at path.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, invalid(path, fmt.Errorf("failed to parse TOML: %w", err))
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, invalid(path, fmt.Errorf("unknown key %q", undecoded[0].String()))
	}
	if !meta.IsDefined("package") {
		return nil, invalid(path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if name == "" {
		return nil, invalid(path, ErrPackageNameMissing)
	}
	entry := strings.TrimSpace(cfg.Check.Entry)
	if !meta.IsDefined("check", "entry") || entry == "" {
		return nil, invalid(path, ErrCheckEntryMissing)
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return nil, invalid(path, fmt.Errorf("invalid [check].max_diagnostics %d", cfg.Check.MaxDiagnostics))
	}
	if cfg.Check.Jobs < 0 {
		return nil, invalid(path, fmt.Errorf("invalid [check].jobs %d", cfg.Check.Jobs))
	}

	root := filepath.Dir(path)
	entryPath, err := resolveEntry(root, entry)
	if err != nil {
		return nil, invalid(path, err)
	}
	return &Manifest{
		Path:           path,
		Root:           root,
		Name:           name,
		Entry:          entryPath,
		MaxDiagnostics: cfg.Check.MaxDiagnostics,
		Jobs:           cfg.Check.Jobs,
	}, nil
}

// resolveEntry resolves [check].entry relative to the project root.
func resolveEntry(root, entry string) (string, error) {
	if filepath.IsAbs(entry) {
		return "", fmt.Errorf("invalid [check].entry %q: must be relative", entry)
	}
	entryPath := filepath.Join(root, filepath.Clean(filepath.FromSlash(entry)))
	if !pathWithin(root, entryPath) {
		return "", fmt.Errorf("invalid [check].entry %q: escapes project root", entry)
	}
	if _, err := os.Stat(entryPath); err != nil {
		return "", fmt.Errorf("invalid [check].entry %q: %w", entry, err)
	}
	return entryPath, nil
}

func pathWithin(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Discover находит story.toml от startDir вверх и загружает его.
// ok=false без ошибки, если манифеста нет.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}
