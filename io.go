// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imageorient

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var errShortRead = errors.New("short read")

// 100 MB should be plenty for a JPEG or PNG we want to preview.
const defaultLimitBufSize = 100 * 1024 * 1024

// readAll reads r fully into memory.
// The format walkers need random access, so no partial result is ever returned.
func readAll(r io.Reader, limit int64) ([]byte, error) {
	if r == nil {
		return nil, &ReadError{Err: errors.New("no reader provided")}
	}
	if limit <= 0 {
		limit = defaultLimitBufSize
	}

	var buf bytes.Buffer
	if s, ok := r.(io.Seeker); ok {
		// Avoid growing the buffer in small steps for files.
		cur, err1 := s.Seek(0, io.SeekCurrent)
		end, err2 := s.Seek(0, io.SeekEnd)
		if err1 == nil && err2 == nil {
			if _, err := s.Seek(cur, io.SeekStart); err != nil {
				return nil, &ReadError{Err: err}
			}
			if size := end - cur; size > 0 && size <= limit {
				buf.Grow(int(size))
			}
		}
	}

	// Read one byte past the limit so we can tell "exactly limit" from "too large".
	n, err := buf.ReadFrom(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	if n > limit {
		return nil, &ReadError{Err: fmt.Errorf("size exceeds max %d", limit)}
	}

	return buf.Bytes(), nil
}

// streamReader is a wrapper around a fully buffered image that provides methods to read binary data.
// Note that this is not thread safe.
type streamReader struct {
	r         *bytes.Reader
	byteOrder binary.ByteOrder

	buf []byte
}

func newStreamReader(b []byte, byteOrder binary.ByteOrder) *streamReader {
	return &streamReader{
		r:         bytes.NewReader(b),
		byteOrder: byteOrder,
	}
}

func (e *streamReader) allocateBuf(length int) {
	if length > cap(e.buf) {
		e.buf = make([]byte, length)
	}
}

func (e *streamReader) pos() int64 {
	return e.r.Size() - int64(e.r.Len())
}

// remaining returns the number of unread bytes.
func (e *streamReader) remaining() int64 {
	return int64(e.r.Len())
}

func (e *streamReader) read1E() (uint8, error) {
	return e.r.ReadByte()
}

func (e *streamReader) read2E() (uint16, error) {
	const n = 2
	if err := e.readNIntoBufE(n); err != nil {
		return 0, err
	}
	return e.byteOrder.Uint16(e.buf[:n]), nil
}

func (e *streamReader) read4E() (uint32, error) {
	const n = 4
	if err := e.readNIntoBufE(n); err != nil {
		return 0, err
	}
	return e.byteOrder.Uint32(e.buf[:n]), nil
}

// readBytesE reads n bytes into a newly allocated slice.
func (e *streamReader) readBytesE(n int) ([]byte, error) {
	if int64(n) > e.remaining() {
		return nil, errShortRead
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(e.r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// readBytesVolatileE reads a slice of bytes from the stream
// which is not guaranteed to be valid after the next read.
func (e *streamReader) readBytesVolatileE(n int) ([]byte, error) {
	if err := e.readNIntoBufE(n); err != nil {
		return nil, err
	}
	return e.buf[:n], nil
}

func (e *streamReader) readNIntoBufE(n int) error {
	e.allocateBuf(n)
	n2, err := io.ReadFull(e.r, e.buf[:n])
	if err != nil {
		return err
	}
	if n != n2 {
		return errShortRead
	}
	return nil
}

func (e *streamReader) skip(n int64) error {
	if n > e.remaining() {
		return errShortRead
	}
	_, err := e.r.Seek(n, io.SeekCurrent)
	return err
}
