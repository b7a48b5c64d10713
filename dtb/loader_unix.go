//go:build linux || darwin

package dtb

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open memory-maps the blob read-only and parses it.
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

	data, err := unix.Mmap(int(f.Fd()), 0, int(sz), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("dtb: mmap %s: %w", path, err)
	}

	tree, err := NewTreeWith(data, opts)
	if err != nil {
		_ = unix.Munmap(data)
		_ = f.Close()
		return nil, err
	}

	return &File{f: f, data: data, size: sz, mapped: true, tree: tree}, nil
}

// Close unmaps the blob and closes the file. All cursors into the tree become
// invalid.
func (f *File) Close() error {
	var err error
	if f.data != nil && f.mapped {
		_ = unix.Munmap(f.data)
	}
	f.data = nil
	if f.f != nil {
		err = f.f.Close()
		f.f = nil
	}
	f.tree = nil
	return err
}
