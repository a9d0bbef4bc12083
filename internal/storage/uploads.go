package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/justsurfingit/jobboard-admin/internal/apperr"
)

// ImageTypes are the MIME types accepted for company logos.
var ImageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// Uploads stores files below a root directory and returns paths relative
// to it.
type Uploads interface {
	Save(fh *multipart.FileHeader, dir string, allowed []string) (string, error)
	Remove(path string) error
}

type LocalUploads struct {
	Root     string
	MaxBytes int64
}

func NewLocalUploads(root string, maxMB int64) *LocalUploads {
	return &LocalUploads{Root: root, MaxBytes: maxMB << 20}
}

// Save checks the size and the sniffed content type, then writes the file
// under a random name.
func (u *LocalUploads) Save(fh *multipart.FileHeader, dir string, allowed []string) (string, error) {
	if fh.Size > u.MaxBytes {
		return "", apperr.Validation(fmt.Sprintf("%s exceeds the %d MB upload limit", fh.Filename, u.MaxBytes>>20))
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect upload type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowed...) {
		return "", apperr.Validation(fmt.Sprintf("%s has unsupported type %s", fh.Filename, mtype.String()))
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	rel := filepath.Join(dir, uuid.NewString()+mtype.Extension())
	dst := filepath.Join(u.Root, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

// Remove deletes a previously saved file. Missing files are ignored.
func (u *LocalUploads) Remove(path string) error {
	if path == "" {
		return nil
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return fmt.Errorf("refusing to remove %q outside upload root", path)
	}
	err := os.Remove(filepath.Join(u.Root, clean))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
