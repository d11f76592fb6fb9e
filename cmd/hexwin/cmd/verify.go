package cmd

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hexwin/hexwin/ihex"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>...",
	Short: "Check record checksums in Intel HEX files",
	Long: `Check every record checksum in one or more Intel HEX files.

The decode path accepts records regardless of checksum correctness, so this
is the place corrupt-but-well-formed input gets caught. Files are checked
concurrently; the first failing file aborts the run.

Example:
  hexwin verify firmware/BINF0456.hex firmware/BINF0457.hex`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	var g errgroup.Group
	for _, name := range args {
		name := name
		g.Go(func() error {
			records, err := verifyFile(name)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d records ok\n", name, records)
			return nil
		})
	}
	return g.Wait()
}

func verifyFile(name string) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, errors.Wrap(err, "opening hex file")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, ihex.MaxLineLen), ihex.MaxLineLen)

	var lineNo, records int
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if line[0] != ':' {
			return 0, errors.Errorf("%s:%d: missing ':' record mark", name, lineNo)
		}
		raw, err := hex.DecodeString(line[1:])
		if err != nil {
			return 0, errors.Wrapf(err, "%s:%d: bad hex", name, lineNo)
		}
		if len(raw) < 5 {
			return 0, errors.Errorf("%s:%d: record too short", name, lineNo)
		}

		length := raw[0]
		addr := binary.BigEndian.Uint16(raw[1:3])
		recType := raw[3]
		if int(length)+5 != len(raw) {
			return 0, errors.Errorf("%s:%d: length field %d does not match %d record bytes",
				name, lineNo, length, len(raw))
		}

		want := ihex.Checksum(length, addr, recType, raw[4:len(raw)-1])
		if got := raw[len(raw)-1]; got != want {
			return 0, errors.Errorf("%s:%d: checksum %02X, want %02X", name, lineNo, got, want)
		}
		records++
	}
	if err := scanner.Err(); err != nil {
		return 0, errors.Wrapf(err, "%s: reading", name)
	}

	return records, nil
}
