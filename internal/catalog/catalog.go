// Package catalog discovers workspace files and sorts them into one bucket
// per execution environment.
package catalog

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"codelaunch/internal/config"
	"codelaunch/internal/errors"
	"codelaunch/internal/log"
	"codelaunch/pkg/types"

	"github.com/gobwas/glob"
)

var (
	workspaceGlob = glob.MustCompile("*" + types.WorkspaceSuffix)

	// safeName allows letters, digits, underscore, whitespace, brackets,
	// dashes and dots before the suffix. No separators, no metacharacters.
	safeName = regexp.MustCompile(`^[\p{L}\p{N}_\s\[\]\-.]+` + regexp.QuoteMeta(types.WorkspaceSuffix) + `$`)
)

// Catalog is the result of one scan, in directory-walk order per bucket.
type Catalog struct {
	Virtualized []types.WorkspaceEntry `json:"virtualized" yaml:"virtualized"`
	Native      []types.WorkspaceEntry `json:"native" yaml:"native"`
}

// Bucket returns the entries for env.
func (c Catalog) Bucket(env types.Environment) []types.WorkspaceEntry {
	if env == types.Virtualized {
		return c.Virtualized
	}
	return c.Native
}

// Len returns the total number of entries.
func (c Catalog) Len() int {
	return len(c.Virtualized) + len(c.Native)
}

// IsWorkspaceFile reports whether name carries the workspace suffix.
func IsWorkspaceFile(name string) bool {
	return workspaceGlob.Match(name)
}

// ValidName reports whether name is a trustworthy workspace identifier.
func ValidName(name string) bool {
	return safeName.MatchString(name)
}

// Classify derives the entry for a single file name. The virtualized marker
// is checked first. A ScanWarning is returned for names without a marker or
// names failing the safety pattern.
func Classify(name string) (types.WorkspaceEntry, error) {
	var env types.Environment
	switch {
	case strings.Contains(name, types.VirtualizedMarker):
		env = types.Virtualized
	case strings.Contains(name, types.NativeMarker):
		env = types.Native
	default:
		return types.WorkspaceEntry{}, errors.NewScanWarning("workspace has no environment marker", name, errors.MissingMarker, nil)
	}
	if !ValidName(name) {
		return types.WorkspaceEntry{}, errors.NewScanWarning("invalid workspace name", name, errors.UnsafeName, nil)
	}
	return types.WorkspaceEntry{
		DisplayName: displayName(name, env.Marker()),
		FileName:    name,
		Environment: env,
	}, nil
}

func displayName(name, marker string) string {
	if i := strings.Index(name, " "+marker); i >= 0 {
		return name[:i]
	}
	trimmed := strings.TrimSuffix(name, types.WorkspaceSuffix)
	trimmed = strings.Replace(trimmed, marker, "", 1)
	return strings.TrimSpace(trimmed)
}

// Walk recursively scans root once and fills both buckets. A missing or
// unreadable root yields an empty catalog; unreadable subdirectories are
// skipped. Launch paths are always root plus file name, so a workspace
// file below a subdirectory is reported and left out.
func Walk(root string) Catalog {
	var cat Catalog

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.LogWithError(errors.NewScanWarning("cannot read directory", path, errors.RootUnreadable, err)).Warn("skipping directory")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !IsWorkspaceFile(d.Name()) {
			return nil
		}

		entry, err := Classify(d.Name())
		if err != nil {
			if errors.KindOf(err) == errors.UnsafeName {
				log.LogError(err, "workspace dropped")
			} else {
				log.LogWithError(err).Debug("workspace skipped")
			}
			return nil
		}
		if filepath.Dir(path) != filepath.Clean(root) {
			rel, _ := filepath.Rel(root, path)
			log.LogWithError(errors.NewScanWarning("workspace is not at the top of the root", rel, errors.NestedWorkspace, nil)).Warn("workspace skipped")
			return nil
		}
		if info, err := d.Info(); err == nil {
			entry.Modified = info.ModTime()
		}
		if entry.Environment == types.Virtualized {
			cat.Virtualized = append(cat.Virtualized, entry)
		} else {
			cat.Native = append(cat.Native, entry)
		}
		return nil
	})
	if err != nil {
		log.LogWithError(errors.NewScanWarning("workspace root is not readable", root, errors.RootUnreadable, err)).Warn("scan returned no workspaces")
		return Catalog{}
	}

	log.LogWithFields(
		log.F("root", root),
		log.F("virtualized", len(cat.Virtualized)),
		log.F("native", len(cat.Native)),
	).Debug("workspace scan complete")
	return cat
}

// Scan walks root and returns the bucket for env.
func Scan(root string, env types.Environment) []types.WorkspaceEntry {
	return Walk(root).Bucket(env)
}

// Load scans the configured native root. Both buckets come from the same
// tree; the virtualized root only matters when a launch path is built.
func Load(cfg *config.Config) Catalog {
	return Walk(cfg.NativeRoot)
}
