package itch

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrCannotOpen is returned when the capture file cannot be mapped or is
// empty. This is the only fatal error in the pipeline.
var ErrCannotOpen = errors.New("cannot open capture")

// frameLengthSize is the u16 big-endian length prefix on every record.
const frameLengthSize = 2

// MessageReader yields framed messages from a capture. The capture is
// memory-mapped read-only; views returned by Next and ReadAt alias the
// mapping directly, so the reader must outlive them. A truncated trailing
// frame ends the stream cleanly.
type MessageReader struct {
	data   []byte
	pos    int64
	mapped bool
}

// OpenFile maps the capture at path read-only. An unmappable or empty file
// fails with ErrCannotOpen.
func OpenFile(path string) (*MessageReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCannotOpen, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCannotOpen, path, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s: empty file", ErrCannotOpen, path)
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(info.Size()),
		syscall.PROT_READ, syscall.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: mmap: %v", ErrCannotOpen, path, err)
	}

	return &MessageReader{data: data, mapped: true}, nil
}

// NewFromBytes wraps an in-memory capture. Used by tests and by callers that
// already hold the bytes.
func NewFromBytes(data []byte) *MessageReader {
	return &MessageReader{data: data}
}

// Size returns the capture size in bytes.
func (r *MessageReader) Size() int64 {
	return int64(len(r.data))
}

// Next yields the frame at the cursor and advances past it. It returns
// false at end of stream, including on a truncated trailing frame.
func (r *MessageReader) Next() (Message, bool) {
	msg, ok := r.ReadAt(r.pos)
	if ok {
		r.pos += frameLengthSize + int64(msg.Length())
	}
	return msg, ok
}

// ReadAt yields the frame at an arbitrary offset without moving the cursor.
// The engine uses it to re-read add/replace messages stored in the order
// index.
func (r *MessageReader) ReadAt(pos int64) (Message, bool) {
	total := int64(len(r.data))
	if pos+frameLengthSize > total {
		return Message{}, false
	}
	length := int64(be16(r.data[pos:]))
	if pos+frameLengthSize+length > total {
		return Message{}, false
	}
	return NewMessage(r.data[pos+frameLengthSize:pos+frameLengthSize+length], pos), true
}

// Close releases the mapping. Views read after Close fault; callers drain
// the stream first.
func (r *MessageReader) Close() error {
	if !r.mapped {
		return nil
	}
	r.mapped = false
	data := r.data
	r.data = nil
	return syscall.Munmap(data)
}
