package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BackupSuffix is appended to a file name by Backup.
const BackupSuffix = ".bak"

// WriteFile replaces path with data. The content is written to a temporary
// file in the same directory and renamed over the original, so readers never
// see a half-written file. If path is a symlink the link target is replaced
// and the link itself is kept. The original permissions are preserved.
func WriteFile(path string, data []byte) error {
	target, err := resolveLink(path)
	if err != nil {
		return err
	}
	mode := FileMode(target, 0644)

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("replacing %s: %w", target, err)
	}
	return nil
}

// Backup copies path to path+BackupSuffix, overwriting any previous backup.
// It returns the backup path.
func Backup(path string) (string, error) {
	dst := path + BackupSuffix
	if err := CopyFile(path, dst); err != nil {
		return "", fmt.Errorf("backing up %s: %w", path, err)
	}
	return dst, nil
}

// CopyFile copies src to dst with src's permissions.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, FileMode(src, 0644))
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// resolveLink follows symlinks at path. A missing file resolves to itself.
func resolveLink(path string) (string, error) {
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return path, nil
	}
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return target, nil
}
