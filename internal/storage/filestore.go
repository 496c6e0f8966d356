package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Upload carries one uploaded binary blob through the service layer, already
// detached from the transport's multipart representation.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// IsEmpty reports whether the upload should be skipped entirely. Multipart
// forms may submit empty file parts for fields the client left blank.
func (u *Upload) IsEmpty() bool {
	return u == nil || u.Size == 0 || u.Content == nil
}

// BlobStore abstracts blob persistence so services can be tested against an
// in-memory implementation. Remove is best-effort cleanup, callers only log
// its failure.
type BlobStore interface {
	Write(dir, name string, src io.Reader) error
	Remove(dir, name string) error
}

// DiskStore writes blobs under configured directories on the local
// filesystem.
type DiskStore struct{}

func NewDiskStore() *DiskStore {
	return &DiskStore{}
}

func (s *DiskStore) Write(dir, name string, src io.Reader) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create upload dir %s", dir)
	}
	dst := filepath.Join(dir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errors.Wrapf(err, "create upload file %s", dst)
	}
	defer f.Close()
	if _, err := io.Copy(f, src); err != nil {
		// remove the partial file so a failed write leaves nothing behind
		_ = os.Remove(dst)
		return errors.Wrapf(err, "write upload file %s", dst)
	}
	return nil
}

func (s *DiskStore) Remove(dir, name string) error {
	return os.Remove(filepath.Join(dir, name))
}
