package ihex

// Checksum computes the record checksum byte: the two's complement of
// the sum of the length byte, both address bytes, the record type and
// every data byte. A well-formed record sums to zero modulo 256 when
// the checksum byte itself is included.
func Checksum(length uint8, addr uint16, recType uint8, data []byte) uint8 {
	sum := int(length) + int(addr&0xFF) + int(addr>>8) + int(recType)
	for _, b := range data {
		sum += int(b)
	}
	return uint8(-sum)
}
