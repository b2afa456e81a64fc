// Package cache maps wallpapers to their on-disk cache locations.
//
// A wallpaper is identified by a stable hash of its configured path string.
// The cache directory holds one verbatim copy of each distinct wallpaper plus
// one pre-blurred frame per (identity, blur level) pair. The layout is
// re-derivable from identity and level alone, so repeated runs reuse prior
// frames. Entries are never pruned.
package cache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/ForgottenUmbrella/swayblur/internal/logger"
)

const dirName = "swayblur"

// Dir returns the cache directory, creating it if necessary.
func Dir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	dir := filepath.Join(base, dirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	return dir, nil
}

// Identity derives the cache key for a wallpaper from its path string.
// The same path always yields the same identity. Collision resistance is not
// a security requirement here, only key stability.
func Identity(sourcePath string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(sourcePath))
}

// CachedImagePath returns the canonical path of the cached copy of the
// wallpaper at sourcePath. Pure path computation, no I/O.
func CachedImagePath(dir, sourcePath string) string {
	return filepath.Join(dir, Identity(sourcePath)+filepath.Ext(sourcePath))
}

// FramePath returns the path of the blurred frame for (identity, level).
// Stable across runs and distinct for any two differing pairs.
func FramePath(dir, identity string, level int) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%d.png", identity, level))
}

// EnsureCached guarantees that cachedPath holds a byte-identical copy of the
// wallpaper at sourcePath. It reports true when the copy was already present
// and identical (cache hit, no side effect) and false when it had to be
// (re)written, in which case the caller must regenerate frames.
//
// The comparison reads full file contents. Size or mtime alone would miss a
// wallpaper replaced in place with different content of identical size.
func EnsureCached(sourcePath, cachedPath string) (bool, error) {
	log := logger.WithComponent("cache")

	if _, err := os.Stat(cachedPath); err == nil {
		same, err := sameContents(sourcePath, cachedPath)
		if err != nil {
			return false, err
		}
		if same {
			log.Debug().
				Str("wallpaper", sourcePath).
				Str("cached", cachedPath).
				Msg("Wallpaper already cached")
			return true, nil
		}
	}

	if err := copyFile(sourcePath, cachedPath); err != nil {
		return false, fmt.Errorf("failed to cache wallpaper %s: %w", sourcePath, err)
	}
	log.Info().
		Str("wallpaper", sourcePath).
		Str("cached", cachedPath).
		Msg("Wallpaper added to the cache")
	return false, nil
}

func sameContents(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", a, err)
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", b, err)
	}
	defer fb.Close()

	bufA := make([]byte, 32*1024)
	bufB := make([]byte, 32*1024)
	for {
		nA, errA := io.ReadFull(fa, bufA)
		nB, errB := io.ReadFull(fb, bufB)
		if nA != nB || string(bufA[:nA]) != string(bufB[:nB]) {
			return false, nil
		}
		endA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		endB := errB == io.EOF || errB == io.ErrUnexpectedEOF
		switch {
		case endA && endB:
			return true, nil
		case endA != endB:
			return false, nil
		case errA != nil:
			return false, errA
		case errB != nil:
			return false, errB
		}
	}
}

// copyFile writes through a temp file and renames, so a crash mid-copy never
// leaves a truncated file at the cached path.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".swayblur-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
