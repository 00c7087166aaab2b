// Package workspace locates legacy GOPATH-style workspace roots by walking
// upward from a starting directory.
package workspace

import (
	"errors"
	"os"
	"path/filepath"
)

// layout lists the conventional workspace subdirectories in order: compiled
// binaries, installed packages, source trees.
var layout = []string{"bin", "pkg", "src"}

// ErrNotFound indicates no workspace root exists at or above the starting
// directory.
var ErrNotFound = errors.New("no GOPATH workspace found in any parent directory")

// Locate walks upward from start until it finds a directory shaped like a
// workspace root. It returns ErrNotFound when the walk reaches the filesystem
// root without a match; any other error is a filesystem fault.
func Locate(start string) (string, error) {
	return locateWith(start, looksLikeRoot)
}

func locateWith(start string, matches func(string) (bool, error)) (string, error) {
	cur, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		ok, err := matches(cur)
		if err != nil {
			return "", err
		}
		if ok {
			return cur, nil
		}
		next := filepath.Dir(cur)
		if next == cur {
			break
		}
		cur = next
	}
	return "", ErrNotFound
}

// looksLikeRoot reports whether dir matches the workspace shape. A directory
// qualifies when every name in a multi-name contiguous tail of [bin pkg src]
// is present as a subdirectory, or when src is its only subdirectory. The
// two rules are deliberately asymmetric: bin+src without pkg never
// qualifies, and neither does src beside an unrelated subdirectory, while a
// bare src does.
func looksLikeRoot(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}

	subdirs := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs[entry.Name()] = true
		}
	}

	// Tails shorter than two names are excluded here; a bare src qualifies
	// only through the lone-subdirectory rule below.
	for i := 0; i+1 < len(layout); i++ {
		if hasAll(subdirs, layout[i:]) {
			return true, nil
		}
	}
	return subdirs["src"] && len(subdirs) == 1, nil
}

func hasAll(subdirs map[string]bool, names []string) bool {
	for _, name := range names {
		if !subdirs[name] {
			return false
		}
	}
	return true
}
