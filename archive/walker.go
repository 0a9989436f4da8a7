// Package archive walks source documents packed into zip archives.
package archive

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/hidez8891/zip"
	"github.com/maruel/natural"
)

// ErrUnsafePath is passed to WalkFunc for entries with absolute names or
// path traversal components.
var ErrUnsafePath = errors.New("unsafe path (absolute or contains path traversal)")

// WalkFunc is called for each file in archive visited by Walk. The archive
// argument is the path passed to Walk. When err is not nil the entry must not
// be used, returning nil skips it and walk continues. If an error is
// returned, processing stops.
type WalkFunc func(archive string, file *zip.File, err error) error

// Walk visits all files in the archive with names starting with prefix in
// natural order of their names ("ch2.html" before "ch10.html").
func Walk(archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	files := make([]*zip.File, 0, len(r.File))
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && strings.HasPrefix(f.FileHeader.Name, prefix) {
			files = append(files, f)
		}
	}
	slices.SortStableFunc(files, func(a, b *zip.File) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})

	for _, f := range files {
		var err error
		if !isSafePath(f.Name) {
			err = fmt.Errorf("zip entry %q: %w", f.Name, ErrUnsafePath)
		}
		if err := walkFn(archive, f, err); err != nil {
			return err
		}
	}
	return nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
