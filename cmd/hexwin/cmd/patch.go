package cmd

import (
	"encoding/hex"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hexwin/hexwin/memwin"
)

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Splice replacement bytes into a hex image",
	Long: `Decode an Intel HEX file into the given address window, overwrite the
bytes at --at with --data, and re-emit the whole window as Intel HEX.

Example:
  hexwin patch -i original/BINF0456.hex -o updated/BINF0456.hex \
      --start 0x0 --end 0x20000 --at 0x1000 --data deadbeef`,
	RunE: runPatch,
}

func init() {
	patchCmd.Flags().StringVarP(&patchIn, "in", "i", "", "Input hex file (required)")
	patchCmd.Flags().StringVarP(&patchOut, "out", "o", "", "Output hex file (required)")
	patchCmd.Flags().Uint32Var(&patchStart, "start", 0, "First address of the window")
	patchCmd.Flags().Uint32Var(&patchEnd, "end", 0, "One past the last address of the window")
	patchCmd.Flags().Uint32Var(&patchAt, "at", 0, "Address of the first replaced byte")
	patchCmd.Flags().StringVar(&patchData, "data", "", "Replacement bytes as hex digits")
	//nolint:errcheck
	patchCmd.MarkFlagRequired("in")
	//nolint:errcheck
	patchCmd.MarkFlagRequired("out")
	//nolint:errcheck
	patchCmd.MarkFlagRequired("end")
	//nolint:errcheck
	patchCmd.MarkFlagRequired("data")
}

var (
	patchIn    string
	patchOut   string
	patchStart uint32
	patchEnd   uint32
	patchAt    uint32
	patchData  string
)

func runPatch(cmd *cobra.Command, args []string) error {
	data, err := hex.DecodeString(patchData)
	if err != nil {
		return errors.Wrap(err, "decoding --data")
	}

	f, err := os.Open(patchIn)
	if err != nil {
		return errors.Wrap(err, "opening input hex file")
	}
	defer f.Close()

	w, err := memwin.New(patchStart, patchEnd)
	if err != nil {
		return err
	}
	if _, err := w.LoadHex(f); err != nil {
		return err
	}
	if err := w.Patch(patchAt, data); err != nil {
		return err
	}

	outF, err := os.OpenFile(patchOut, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "opening output hex file")
	}
	defer outF.Close()

	return w.StoreHex(outF)
}
