// Package memwin holds a flat memory image over a fixed [start, end)
// address window, tracking which bytes have actually been filled so
// tools can report coverage and gaps in sparse firmware images.
package memwin

import (
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/hexwin/hexwin/ihex"
)

// Window is a caller-owned image of the address range [start, end).
// The buffer is allocated once at construction and never grows.
type Window struct {
	start, end uint32
	buf        []byte
	seen       *bitset.BitSet
	records    []ihex.Record
}

// Gap is a maximal run of addresses never written to, as absolute
// addresses forming the half-open range [Start, End).
type Gap struct {
	Start uint32
	End   uint32
}

func New(start, end uint32) (*Window, error) {
	if end <= start {
		return nil, errors.Errorf("empty window [%#x, %#x)", start, end)
	}
	size := end - start
	return &Window{
		start: start,
		end:   end,
		buf:   make([]byte, size),
		seen:  bitset.New(uint(size)),
	}, nil
}

func (w *Window) Start() uint32 { return w.start }
func (w *Window) End() uint32   { return w.end }
func (w *Window) Size() uint32  { return w.end - w.start }

// Bytes returns the backing buffer. Unwritten bytes are zero.
func (w *Window) Bytes() []byte { return w.buf }

// Records returns the per-line metadata of the last LoadHex call.
func (w *Window) Records() []ihex.Record { return w.records }

// LoadHex decodes an Intel HEX stream into the window and returns the
// span of the captured region. Decode errors are returned as-is so
// callers can still type-assert the ihex error kinds.
func (w *Window) LoadHex(r io.Reader) (int64, error) {
	dec := ihex.NewDecoder(r, w.buf, w.start, w.end, ihex.WithCoverage(w.seen))
	span, err := dec.Decode()
	if err != nil {
		return 0, err
	}
	w.records = dec.Records
	return span, nil
}

// StoreHex encodes the whole window as Intel HEX text.
func (w *Window) StoreHex(out io.Writer) error {
	return ihex.Encode(out, w.buf, w.start, w.end)
}

// LoadBin fills the window front to back with raw bytes from r and
// returns how many were read. Inputs shorter than the window leave the
// tail unwritten; inputs longer than the window are an error.
func (w *Window) LoadBin(r io.Reader) (int, error) {
	n, err := io.ReadFull(r, w.buf)
	switch err {
	case nil:
		var extra [1]byte
		if m, _ := r.Read(extra[:]); m > 0 {
			return n, errors.Errorf("input exceeds window size %d", w.Size())
		}
	case io.EOF, io.ErrUnexpectedEOF:
	default:
		return n, errors.Wrap(err, "reading raw image")
	}
	for i := 0; i < n; i++ {
		w.seen.Set(uint(i))
	}
	return n, nil
}

// Patch splices data into the window at the absolute address addr.
func (w *Window) Patch(addr uint32, data []byte) error {
	if addr < w.start || uint64(addr)+uint64(len(data)) > uint64(w.end) {
		return errors.Errorf("patch of %d bytes at %#x outside window [%#x, %#x)",
			len(data), addr, w.start, w.end)
	}
	pos := addr - w.start
	copy(w.buf[pos:], data)
	for i := uint(pos); i < uint(pos)+uint(len(data)); i++ {
		w.seen.Set(i)
	}
	return nil
}

// Coverage reports the fraction of window bytes that have been written.
func (w *Window) Coverage() float64 {
	return float64(w.seen.Count()) / float64(len(w.buf))
}

// Gaps lists the runs of bytes never written, in address order.
func (w *Window) Gaps() []Gap {
	var gaps []Gap
	size := uint(len(w.buf))
	for i := uint(0); i < size; {
		clear, ok := w.seen.NextClear(i)
		if !ok || clear >= size {
			break
		}
		set, ok := w.seen.NextSet(clear)
		if !ok || set > size {
			set = size
		}
		gaps = append(gaps, Gap{
			Start: w.start + uint32(clear),
			End:   w.start + uint32(set),
		})
		i = set
	}
	return gaps
}
