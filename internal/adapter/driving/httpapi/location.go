package httpapi

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/filip867/Karl-Filip/internal/shared/types"
)

const s3Scheme = "s3://"

// importLocations bounds the locations a JSON import may name. The zero value
// allows none.
type importLocations struct {
	dir      string
	s3Prefix string
}

func newImportLocations(dir, s3Prefix string) importLocations {
	l := importLocations{s3Prefix: strings.TrimSpace(s3Prefix)}
	if dir = strings.TrimSpace(dir); dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			dir = resolved
		}
		l.dir = filepath.Clean(dir)
	}
	return l
}

// resolve returns the location to fetch, or ErrLocationForbidden when it
// falls outside the allowed directory or bucket prefix. Relative paths are
// taken relative to the allowed directory.
func (l importLocations) resolve(location string) (string, error) {
	location = strings.TrimSpace(location)
	if strings.HasPrefix(location, s3Scheme) {
		key := strings.TrimPrefix(location, l.s3Prefix)
		if l.s3Prefix == "" || key == location || hasDotDot(key) {
			return "", fmt.Errorf("%w: %s", types.ErrLocationForbidden, location)
		}
		return location, nil
	}

	if l.dir == "" {
		return "", fmt.Errorf("%w: %s", types.ErrLocationForbidden, location)
	}
	p := location
	if !filepath.IsAbs(p) {
		p = filepath.Join(l.dir, p)
	}
	p = filepath.Clean(p)
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	rel, err := filepath.Rel(l.dir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", types.ErrLocationForbidden, location)
	}
	return p, nil
}

func hasDotDot(key string) bool {
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return true
		}
	}
	return false
}
