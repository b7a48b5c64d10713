//go:build !linux && !darwin

package dtb

import (
	"fmt"
	"io"
	"os"
)

// Open reads the blob into memory on platforms without the mmap path and
// parses it.
func Open(path string) (*File, error) {
	return OpenWith(path, Options{})
}

// OpenWith is Open with explicit Options.
func OpenWith(path string, opts Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("dtb: empty blob file %s: %w", path, ErrTruncated)
	}

	data := make([]byte, sz)
	if _, err := io.ReadFull(f, data); err != nil {
		_ = f.Close()
		return nil, err
	}

	tree, err := NewTreeWith(data, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &File{f: f, data: data, size: sz, tree: tree}, nil
}

// Close releases the buffer and closes the file.
func (f *File) Close() error {
	var err error
	f.data = nil
	if f.f != nil {
		err = f.f.Close()
		f.f = nil
	}
	f.tree = nil
	return err
}
