// Package ihex reads and writes the Intel HEX text encoding of a flat
// memory image over a caller-supplied [start, end) address window.
//
// Supported record types are Data (00), End Of File (01), Extended
// Segment Address (02) and Extended Linear Address (04). Record
// checksums are emitted on encode but intentionally not verified on
// decode; callers that need verification can recompute with Checksum.
package ihex

// Record types understood by the decoder and emitted by the encoder.
const (
	RecData           uint8 = 0x00
	RecEOF            uint8 = 0x01
	RecExtSegmentAddr uint8 = 0x02
	RecExtLinearAddr  uint8 = 0x04
)

// MaxLineLen is the longest well-formed record line: 9 header
// characters, up to 255 data byte pairs, the checksum pair, and CR/LF.
const MaxLineLen = 9 + 255*2 + 2 + 2

// Record is the per-line metadata retained by a Decoder. Data bytes are
// scattered directly into the destination buffer and are not kept here.
type Record struct {
	Length uint8
	Addr   uint16
	Type   uint8
	Line   int
}
