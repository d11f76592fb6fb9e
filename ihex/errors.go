package ihex

import "fmt"

// MalformedRecordError reports a line that does not conform to the
// record grammar. Line numbers are 1-based.
type MalformedRecordError struct {
	Line   int
	Detail string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: %s", e.Line, e.Detail)
}

// OutOfRangeError reports a data record whose effective address falls
// outside the requested [start, end) window.
type OutOfRangeError struct {
	Line    int
	Address uint32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("address %#x out of range at line %d", e.Address, e.Line)
}

// IOError reports a read or write failure on the underlying stream.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("i/o error: %v", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
