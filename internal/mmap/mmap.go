// Package mmap provides a small wrapper around a read-only memory-mapped
// file, used to back the sorted phrase database and the byte-block
// dictionaries without copying their contents into the heap.
package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// ErrOpenFailed is returned when the backing file cannot be opened, stat'd,
// or mapped.
var ErrOpenFailed = errors.New("mmap: open failed")

// File is a memory-mapped, read-only view of a file's contents. The zero
// value is a closed File. A File must not be copied after Open succeeds;
// pass it by pointer.
//
// Every slice derived from Data is only valid until Close is called; callers
// must not retain such slices across a Close.
type File struct {
	data   []byte
	mapped bool
}

// Open maps path into memory read-only. On any failure the File is left
// closed and an error wrapping ErrOpenFailed is returned.
func (f *File) Open(path string) error {
	if f.data != nil {
		return nil
	}

	fh, err := os.Open(path)
	if err != nil {
		return errorsJoin(ErrOpenFailed, err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return errorsJoin(ErrOpenFailed, err)
	}

	length := info.Size()
	if length == 0 {
		f.data = []byte{}
		return nil
	}

	data, err := unix.Mmap(int(fh.Fd()), 0, int(length), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return errorsJoin(ErrOpenFailed, err)
	}

	f.data = data
	f.mapped = true
	return nil
}

// Load wires up an in-memory blob as if it had been mapped from a file. It
// is used by callers (and tests) that already have the bytes in hand.
func (f *File) Load(data []byte) {
	f.data = data
	f.mapped = false
}

// Data returns the mapped bytes, or nil if the file is closed.
func (f *File) Data() []byte {
	return f.data
}

// Len returns the length of the mapped data.
func (f *File) Len() int {
	return len(f.data)
}

// Close unmaps the file. Double-close is a no-op. Any slice derived from a
// prior Data() call becomes invalid the moment Close returns.
func (f *File) Close() error {
	if f.data == nil {
		return nil
	}
	data := f.data
	mapped := f.mapped
	f.data = nil
	f.mapped = false

	if mapped && len(data) > 0 {
		return unix.Munmap(data)
	}
	return nil
}

// errorsJoin mirrors errors.Join, kept as a helper so the import stays
// singular and obviously intentional at call sites.
func errorsJoin(errs ...error) error {
	return errors.Join(errs...)
}
