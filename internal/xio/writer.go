package xio

import (
	"io"
)

// NewResponseWriteCloser adapts w for encoders that insist on closing their sink.
// Close only closes w when it is an io.Closer; the number of bytes written is kept for logging.
func NewResponseWriteCloser(w io.Writer) *ResponseWriteCloser {
	return &ResponseWriteCloser{
		w: w,
	}
}

type ResponseWriteCloser struct {
	w       io.Writer
	written int64
	closed  bool
}

func (rwc *ResponseWriteCloser) Write(p []byte) (int, error) {
	if rwc.closed {
		return 0, io.ErrClosedPipe
	}
	n, err := rwc.w.Write(p)
	rwc.written += int64(n)
	return n, err
}

func (rwc *ResponseWriteCloser) Written() int64 {
	return rwc.written
}

func (rwc *ResponseWriteCloser) Close() error {
	if rwc.closed {
		return nil
	}
	rwc.closed = true
	if closer, ok := rwc.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
