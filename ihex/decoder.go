package ihex

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Decoder scatters the data bytes of an Intel HEX stream into a
// caller-owned buffer representing the address window [start, end).
// A Decoder is single-use: construct, call Decode once, inspect Records.
type Decoder struct {
	r          io.Reader
	buf        []byte
	start, end uint32

	offset   uint32
	coverage *bitset.BitSet

	Records []Record
}

type DecoderOption func(*Decoder)

// WithCoverage marks every captured buffer index in bs, letting callers
// distinguish decoded bytes from untouched gap bytes afterwards.
func WithCoverage(bs *bitset.BitSet) DecoderOption {
	return func(d *Decoder) {
		d.coverage = bs
	}
}

func NewDecoder(r io.Reader, buf []byte, start, end uint32, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		r:     r,
		buf:   buf,
		start: start,
		end:   end,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode consumes the stream line by line and returns the span of the
// captured region, greatest_addr - start. The span counts gaps: two
// records at the window's edges yield the full window size regardless
// of how few bytes were written. An input without any data record
// returns 0, and a missing End Of File record is not an error.
//
// The trailing checksum byte of each record is parsed for shape only;
// its value is not compared against Checksum. On error the buffer may
// be partially written and must be discarded by the caller.
func (d *Decoder) Decode() (int64, error) {
	scanner := bufio.NewScanner(d.r)
	scanner.Buffer(make([]byte, 0, MaxLineLen), MaxLineLen)

	lineNo := 0
	greatest := int64(d.start)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if line[0] != ':' {
			return 0, &MalformedRecordError{Line: lineNo, Detail: "missing ':' record mark"}
		}
		if len(line) < 9 {
			return 0, &MalformedRecordError{Line: lineNo, Detail: "truncated record header"}
		}

		length, err := strconv.ParseUint(line[1:3], 16, 8)
		if err != nil {
			return 0, &MalformedRecordError{Line: lineNo, Detail: "bad length field"}
		}
		addr, err := strconv.ParseUint(line[3:7], 16, 16)
		if err != nil {
			return 0, &MalformedRecordError{Line: lineNo, Detail: "bad address field"}
		}
		recType, err := strconv.ParseUint(line[7:9], 16, 8)
		if err != nil {
			return 0, &MalformedRecordError{Line: lineNo, Detail: "bad record type field"}
		}

		d.Records = append(d.Records, Record{
			Length: uint8(length),
			Addr:   uint16(addr),
			Type:   uint8(recType),
			Line:   lineNo,
		})

		switch uint8(recType) {
		case RecExtSegmentAddr, RecExtLinearAddr:
			if len(line) < 13 {
				return 0, &MalformedRecordError{Line: lineNo, Detail: "truncated extended address value"}
			}
			value, err := strconv.ParseUint(line[9:13], 16, 16)
			if err != nil {
				return 0, &MalformedRecordError{Line: lineNo, Detail: "bad extended address value"}
			}
			if uint8(recType) == RecExtSegmentAddr {
				d.offset = uint32(value) * 16
			} else {
				d.offset = uint32(value) << 16
			}
		}

		for i := 9; i < len(line)-1; i += 2 {
			b, err := strconv.ParseUint(line[i:i+2], 16, 8)
			if err != nil {
				return 0, &MalformedRecordError{
					Line:   lineNo,
					Detail: "bad hex pair at character " + strconv.Itoa(i),
				}
			}
			if uint8(recType) != RecData {
				// Only data records carry placeable bytes.
				break
			}
			idx := uint32(i-9) / 2
			if idx >= uint32(length) {
				// Trailing checksum byte, not data.
				break
			}
			eff := uint32(addr) + d.offset
			if eff < d.start {
				return 0, &OutOfRangeError{Line: lineNo, Address: eff}
			}
			if uint64(eff)+uint64(length) > uint64(d.end) {
				return 0, &OutOfRangeError{Line: lineNo, Address: eff}
			}
			if top := int64(eff) + int64(length); top > greatest {
				greatest = top
			}
			pos := eff - d.start + idx
			d.buf[pos] = uint8(b)
			if d.coverage != nil {
				d.coverage.Set(uint(pos))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return 0, &MalformedRecordError{Line: lineNo + 1, Detail: "line exceeds maximum record length"}
		}
		return 0, &IOError{Err: err}
	}

	return greatest - int64(d.start), nil
}

// Decode reads the Intel HEX stream from r into buf, which must hold
// end - start bytes for the address window [start, end).
func Decode(r io.Reader, buf []byte, start, end uint32) (int64, error) {
	return NewDecoder(r, buf, start, end).Decode()
}
