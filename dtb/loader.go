package dtb

import "os"

// File is an on-disk blob opened by Open. On unix platforms the blob is
// memory-mapped read-only; elsewhere it is read into memory. Either way the
// Tree and every cursor derived from it borrow the File's buffer, so Close
// must not be called while any of them is still in use.
type File struct {
	f      *os.File
	data   []byte
	size   int64
	mapped bool
	tree   *Tree
}

// Tree returns the parsed tree backed by the file's buffer.
func (f *File) Tree() *Tree { return f.tree }

// Size returns the on-disk file size, which may exceed the blob's declared
// total size when the file carries trailing padding.
func (f *File) Size() int64 { return f.size }
