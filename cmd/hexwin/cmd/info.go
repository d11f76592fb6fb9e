package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"github.com/hexwin/hexwin/ihex"
	"github.com/hexwin/hexwin/memwin"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Report span, coverage and record breakdown of a hex image",
	Long: `Decode an Intel HEX file into the given address window and report the
captured span, the fraction of window bytes actually written, any gaps
between records, and a per-type record count.

Example:
  hexwin info --start 0x08000000 --end 0x08020000 firmware/BINF0456.hex`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().Uint32Var(&infoStart, "start", 0, "First address of the window")
	infoCmd.Flags().Uint32Var(&infoEnd, "end", 0, "One past the last address of the window")
	//nolint:errcheck
	infoCmd.MarkFlagRequired("end")
}

var (
	infoStart uint32
	infoEnd   uint32
)

var recordTypeNames = map[uint8]string{
	ihex.RecData:           "data",
	ihex.RecEOF:            "end-of-file",
	ihex.RecExtSegmentAddr: "ext-segment-addr",
	ihex.RecExtLinearAddr:  "ext-linear-addr",
}

func runInfo(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "opening hex file")
	}
	defer f.Close()

	w, err := memwin.New(infoStart, infoEnd)
	if err != nil {
		return err
	}

	span, err := w.LoadHex(f)
	if err != nil {
		return err
	}

	fmt.Printf("window   [%#x, %#x) (%d bytes)\n", w.Start(), w.End(), w.Size())
	fmt.Printf("span     %d bytes\n", span)
	fmt.Printf("coverage %.1f%%\n", 100*w.Coverage())

	for _, gap := range w.Gaps() {
		fmt.Printf("gap      [%#x, %#x) (%d bytes)\n", gap.Start, gap.End, gap.End-gap.Start)
	}

	counts := make(map[uint8]int)
	for _, rec := range w.Records() {
		counts[rec.Type]++
	}
	types := maps.Keys(counts)
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		typeName, ok := recordTypeNames[t]
		if !ok {
			typeName = fmt.Sprintf("type-%02x", t)
		}
		fmt.Printf("records  %-17s %d\n", typeName, counts[t])
	}

	return nil
}
