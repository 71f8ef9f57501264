package iolib

import "io"

// CappedBuffer keeps the first bytes written to it up to a limit and
// counts everything.
type CappedBuffer struct {
	buf   []byte
	limit int
	total uint64
}

var _ io.Writer = (*CappedBuffer)(nil)

func NewCappedBuffer(limit int) *CappedBuffer {
	return &CappedBuffer{buf: make([]byte, 0, min(limit, 4096)), limit: limit}
}

// Write never fails. Bytes past the limit are counted and dropped.
func (b *CappedBuffer) Write(p []byte) (int, error) {
	if room := b.limit - len(b.buf); room > 0 {
		b.buf = append(b.buf, p[:min(room, len(p))]...)
	}
	b.total += uint64(len(p))
	return len(p), nil
}

// Bytes returns the kept bytes. The slice is valid until the next Write.
func (b *CappedBuffer) Bytes() []byte { return b.buf }

// Total is the number of bytes written, kept or not.
func (b *CappedBuffer) Total() uint64 { return b.total }

// Complete reports whether nothing was dropped.
func (b *CappedBuffer) Complete() bool { return b.total == uint64(len(b.buf)) }
