package ihex

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Chunks never exceed 32 data bytes and never cross a 64K block
// boundary; a block change is announced by an Extended Linear Address
// record before the block's first data record.
const maxChunkLen = 32

// Encoder emits the Intel HEX encoding of a caller-owned buffer
// representing the address window [start, end).
type Encoder struct {
	w          io.Writer
	buf        []byte
	start, end uint32
}

func NewEncoder(w io.Writer, buf []byte, start, end uint32) *Encoder {
	return &Encoder{
		w:     w,
		buf:   buf,
		start: start,
		end:   end,
	}
}

// Encode writes the whole window as uppercase records terminated by a
// single End Of File record. Any write failure aborts immediately with
// an IOError; no further records are emitted.
func (e *Encoder) Encode() error {
	// Sentinel meaning no Extended Linear Address record emitted yet.
	// Whenever the window extends past the first 64K block, an initial
	// record is forced even for block 0.
	curBlock := int64(0)
	if e.end > 0xFFFF {
		curBlock = -1
	}

	for chunkStart := e.start; chunkStart < e.end; {
		chunkLen := e.end - chunkStart
		if chunkLen > maxChunkLen {
			chunkLen = maxChunkLen
		}
		if (chunkStart&0xFFFF)+chunkLen > 0xFFFF {
			chunkLen = 0x10000 - chunkStart&0xFFFF
		}

		if block := int64(chunkStart >> 16); block != curBlock {
			curBlock = block
			value := uint16(block)
			valueBytes := []byte{uint8(value >> 8), uint8(value)}
			csum := Checksum(2, 0, RecExtLinearAddr, valueBytes)
			if _, err := fmt.Fprintf(e.w, ":02000004%04X%02X\n", value, csum); err != nil {
				return &IOError{Err: err}
			}
		}

		data := e.buf[chunkStart-e.start : chunkStart-e.start+chunkLen]
		csum := Checksum(uint8(chunkLen), uint16(chunkStart), RecData, data)
		_, err := fmt.Fprintf(e.w, ":%02X%04X00%s%02X\n",
			chunkLen, chunkStart&0xFFFF, strings.ToUpper(hex.EncodeToString(data)), csum)
		if err != nil {
			return &IOError{Err: err}
		}

		chunkStart += chunkLen
	}

	if _, err := io.WriteString(e.w, ":00000001FF\n"); err != nil {
		return &IOError{Err: err}
	}

	return nil
}

// Encode writes buf, which holds end - start bytes for the address
// window [start, end), to w as Intel HEX text.
func Encode(w io.Writer, buf []byte, start, end uint32) error {
	return NewEncoder(w, buf, start, end).Encode()
}
