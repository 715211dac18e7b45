package organizer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/zeebo/xxh3"

	"github.com/organai/organai/organizer/models"
)

// maxConflictAttempts bounds the numeric suffix search before a move is
// reported as a conflict.
const maxConflictAttempts = 1000

var (
	ErrMoveConflict     = errors.New("destination name space exhausted")
	ErrPermissionDenied = errors.New("permission denied")
)

// Mover relocates files under a destination root. Directory creation and
// name picking for one destination directory are serialized through a
// striped lock so concurrent workers cannot race the same target name.
type Mover struct {
	Root    string
	DryRun  bool
	stripes [64]sync.Mutex
}

func NewMover(root string, dryRun bool) *Mover {
	return &Mover{Root: root, DryRun: dryRun}
}

// Move relocates the file at source into the suggested relative path under
// the root. The destination never overwrites an existing file; a taken name
// gets an incrementing suffix before the extension.
func (m *Mover) Move(source, suggestedPath string) models.MoveResult {
	result := models.MoveResult{Source: source}

	destDir := filepath.Join(m.Root, filepath.FromSlash(suggestedPath))

	lock := m.stripeFor(destDir)
	lock.Lock()
	defer lock.Unlock()

	target, err := pickTargetName(destDir, filepath.Base(source))
	if err != nil {
		result.Err = err
		return result
	}
	result.Target = target

	// A dry run only plans the target name; the filesystem stays untouched.
	if m.DryRun {
		return result
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		result.Err = classifyMoveError(err)
		return result
	}

	if err := moveFile(source, target); err != nil {
		result.Err = classifyMoveError(err)
	}
	return result
}

// moveFile renames when possible and falls back to copy+remove for
// cross-device destinations.
func moveFile(source, target string) error {
	err := os.Rename(source, target)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return err
	}
	if err := copyFile(source, target); err != nil {
		return err
	}
	return os.Remove(source)
}

func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(target)
		return err
	}
	return out.Close()
}

// pickTargetName returns a path in destDir that does not exist yet,
// suffixing the stem with _1, _2, ... when the plain name is taken.
func pickTargetName(destDir, name string) (string, error) {
	candidate := filepath.Join(destDir, name)
	if !exists(candidate) {
		return candidate, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; i <= maxConflictAttempts; i++ {
		candidate = filepath.Join(destDir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrMoveConflict, name, destDir)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func classifyMoveError(err error) error {
	if os.IsPermission(err) {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return err
}

func (m *Mover) stripeFor(destDir string) *sync.Mutex {
	return &m.stripes[xxh3.HashString(destDir)%uint64(len(m.stripes))]
}
