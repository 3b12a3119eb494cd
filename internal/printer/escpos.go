package printer

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ESC/POS command bytes.
const (
	esc = 0x1B
	gs  = 0x1D
)

// escpos accumulates a print job in memory so the device is only held while
// the finished job is written.
type escpos struct {
	buf bytes.Buffer
	enc *encoding.Encoder
}

func newESCPOS() *escpos {
	return &escpos{enc: encoding.ReplaceUnsupported(charmap.CodePage437.NewEncoder())}
}

// reset initialises the printer: left aligned, font A, normal size, PC437.
func (e *escpos) reset() {
	e.buf.Write([]byte{esc, '@'})
	e.buf.Write([]byte{esc, 't', 0})
	e.buf.Write([]byte{esc, 'a', 0})
	e.buf.Write([]byte{esc, 'M', 0})
	e.buf.Write([]byte{gs, '!', 0})
}

func (e *escpos) text(s string) {
	encoded, err := e.enc.String(s)
	if err != nil {
		// ReplaceUnsupported never fails on unmappable runes; keep the ASCII.
		encoded = s
	}
	e.buf.WriteString(encoded)
}

// qr prints data as a native model 2 QR code with module size n.
func (e *escpos) qr(data string, n int) {
	e.buf.Write([]byte{gs, '(', 'k', 4, 0, 49, 65, 50, 0}) // model 2
	e.buf.Write([]byte{gs, '(', 'k', 3, 0, 49, 67, byte(n)})
	e.buf.Write([]byte{gs, '(', 'k', 3, 0, 49, 69, 48}) // error correction L
	l := len(data) + 3
	e.buf.Write([]byte{gs, '(', 'k', byte(l % 256), byte(l / 256), 49, 80, 48})
	e.buf.WriteString(data)
	e.buf.Write([]byte{gs, '(', 'k', 3, 0, 49, 81, 48}) // print
	e.buf.WriteByte('\n')
}

// cut feeds past the tear bar and performs a full cut.
func (e *escpos) cut() {
	e.buf.Write([]byte{esc, 'd', 6})
	e.buf.Write([]byte{gs, 'V', 0})
}

func (e *escpos) bytes() []byte {
	return e.buf.Bytes()
}
