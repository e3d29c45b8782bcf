// Package backup snapshots a file or directory next to itself before it is rewritten.
// Backups are never deleted or restored by ccrefactor.
package backup

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fumiya-kume/ccrefactor/pkg/clock"
	"github.com/fumiya-kume/ccrefactor/pkg/errors"
	"github.com/fumiya-kume/ccrefactor/pkg/logger"
)

// timestampLayout is ISO-8601 in UTC with millisecond precision
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Manager creates timestamped sibling copies of paths
type Manager struct {
	clock  clock.Clock
	logger logger.LoggerInterface
}

// NewManager creates a backup manager. A nil clock uses the wall clock and a nil
// logger discards output.
func NewManager(clk clock.Clock, log logger.LoggerInterface) *Manager {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Manager{clock: clk, logger: logger.OrNop(log)}
}

// Path returns the backup location for target at time t:
// <target>.backup.<timestamp> with ':' and '.' in the timestamp replaced by '-'.
// Targets such as "." or ".." are made absolute first so the backup lands next
// to the directory rather than inside it.
func Path(target string, t time.Time) string {
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(t.UTC().Format(timestampLayout))
	return fmt.Sprintf("%s.backup.%s", siblingBase(target), stamp)
}

func siblingBase(target string) string {
	cleaned := filepath.Clean(target)
	if base := filepath.Base(cleaned); base != "." && base != ".." && base != string(filepath.Separator) {
		return cleaned
	}
	if abs, err := filepath.Abs(cleaned); err == nil {
		return abs
	}
	return cleaned
}

// Create copies target to its backup path and returns that path. Directories are
// copied recursively with their permissions.
func (m *Manager) Create(target string) (string, error) {
	info, err := os.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.InputNotFoundError(target)
		}
		return "", errors.FileSystemError("stat", target, err)
	}

	dst := Path(target, m.clock.Now())
	if _, err := os.Lstat(dst); err == nil {
		return "", errors.NewError(errors.ErrorTypeFileSystem).
			WithMessagef("backup %s already exists", dst).
			WithContext("path", dst).
			Build()
	}

	if info.IsDir() {
		err = copyDir(target, dst)
	} else {
		err = copyFile(target, dst, info.Mode())
	}
	if err != nil {
		// leave no half-written snapshot behind
		_ = os.RemoveAll(dst) //nolint:errcheck // best-effort cleanup after a failed copy
		return "", errors.FileSystemError("backup", target, err)
	}

	m.logger.Info("created backup %s", dst)
	return dst, nil
}

func copyDir(src, dst string) error {
	if inside(src, dst) {
		return fmt.Errorf("backup destination %s is inside %s", dst, src)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case info.Mode()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case info.Mode().IsRegular():
			return copyFile(path, target, info.Mode())
		default:
			// sockets, devices and pipes are not snapshotted
			return nil
		}
	})
}

// inside reports whether path lies within dir
func inside(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func copyFile(src, dst string, mode fs.FileMode) error {
	// #nosec G304 - src is the refactoring target chosen by the caller
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close() //nolint:errcheck // read-only handle
	}()

	// #nosec G304 - dst is derived from src
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close() //nolint:errcheck // the copy error is reported instead
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// the umask may have narrowed the permissions passed to OpenFile
	return os.Chmod(dst, mode.Perm())
}
