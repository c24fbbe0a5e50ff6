package intake

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
)

var ErrArchiveRead = errors.New("ARCHIVE_READ_FAILED")

// ListArchive returns the entry names of a ZIP archive in archive order.
// Directory entries are reported with a trailing slash so IsSystemEntry
// drops them.
func ListArchive(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveRead, err)
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		name := f.Name
		if f.FileInfo().IsDir() && len(name) > 0 && name[len(name)-1] != '/' {
			name += "/"
		}
		names = append(names, name)
	}
	return names, nil
}
