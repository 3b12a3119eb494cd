// Package printer renders composed vignettes on a thermal receipt printer
// speaking ESC/POS, over a local character device or a raw TCP socket, and
// provides a plain-text renderer for dry runs.
package printer

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// TransportError reports that the printer could not be reached or the job
// could not be written. The session treats it as recoverable.
type TransportError struct {
	Op  string // "open", "write" or "close"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("printer: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Opener acquires a handle to the printer for one job.
type Opener func(ctx context.Context) (io.WriteCloser, error)

// DeviceOpener opens a local printer device such as /dev/usb/lp0.
func DeviceOpener(path string) Opener {
	return func(ctx context.Context) (io.WriteCloser, error) {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// NetworkOpener connects to a raw-socket printer (usually port 9100).
func NetworkOpener(addr string, timeout time.Duration) Opener {
	return func(ctx context.Context) (io.WriteCloser, error) {
		d := net.Dialer{Timeout: timeout}
		return d.DialContext(ctx, "tcp", addr)
	}
}

// Printer renders compositions as ESC/POS receipts.
type Printer struct {
	Open   Opener
	Width  int // columns per line; DefaultWidth when zero
	QRSize int // QR module size; 6 when zero
}

// Render encodes the whole receipt, then opens the printer, writes the job
// and releases the handle before returning.
func (p *Printer) Render(ctx context.Context, c vignette.Composition) error {
	job := p.Encode(c)

	w, err := p.Open(ctx)
	if err != nil {
		return &TransportError{Op: "open", Err: err}
	}
	if _, err := w.Write(job); err != nil {
		_ = w.Close()
		return &TransportError{Op: "write", Err: err}
	}
	if err := w.Close(); err != nil {
		return &TransportError{Op: "close", Err: err}
	}
	return nil
}

// Encode returns the ESC/POS byte stream for c.
func (p *Printer) Encode(c vignette.Composition) []byte {
	width := p.Width
	if width <= 0 {
		width = DefaultWidth
	}
	qrSize := p.QRSize
	if qrSize <= 0 {
		qrSize = 6
	}

	e := newESCPOS()
	e.reset()
	for _, s := range layout(c, width) {
		switch {
		case s.rule:
			e.text(rule(width))
		case s.qr != "":
			e.qr(s.qr, qrSize)
		default:
			e.text(s.text)
		}
	}
	e.cut()
	return e.bytes()
}
