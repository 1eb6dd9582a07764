// Package filex reads local files selected as registration attachments and
// prepares directories for client-side state.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrEmptyFile = errors.New("file is empty")
	ErrTooLarge  = errors.New("file is too large")
	ErrNotAFile  = errors.New("not a regular file")
)

// Attachment is the content of a local file plus its sniffed media type.
type Attachment struct {
	Name        string
	ContentType string
	Extension   string
	Data        []byte
}

// Sniff reports the media type (without parameters) and canonical extension
// of data, based on its content rather than the file name.
func Sniff(data []byte) (contentType string, extension string) {
	m := mimetype.Detect(data)
	ct, _, _ := strings.Cut(m.String(), ";")
	return strings.TrimSpace(ct), m.Extension()
}

// StatAttachment checks that path is a non-empty regular file no larger than
// maxSize bytes (maxSize <= 0 disables the limit) and returns its size.
func StatAttachment(path string, maxSize int64) (int64, error) {
	st, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if !st.Mode().IsRegular() {
		return 0, fmt.Errorf("%s: %w", path, ErrNotAFile)
	}
	if st.Size() == 0 {
		return 0, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	if maxSize > 0 && st.Size() > maxSize {
		return 0, fmt.Errorf("%s (%d bytes, limit %d): %w", path, st.Size(), maxSize, ErrTooLarge)
	}
	return st.Size(), nil
}

// ReadAttachment loads the file at path after StatAttachment checks pass.
func ReadAttachment(path string, maxSize int64) (*Attachment, error) {
	if _, err := StatAttachment(path, maxSize); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	ct, ext := Sniff(data)
	return &Attachment{
		Name:        filepath.Base(path),
		ContentType: ct,
		Extension:   ext,
		Data:        data,
	}, nil
}

// EnsureParentDir creates the directory that will hold path, if any.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
