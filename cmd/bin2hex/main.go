package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/hexwin/hexwin/memwin"
)

func main() {
	in := flag.String("in", "", "Input bin file")
	out := flag.String("out", "", "Output hex file (stdout if empty)")
	start := flag.Uint64("start", 0, "Address of the first input byte")

	flag.Parse()

	log.SetFlags(log.Lmicroseconds | log.Lshortfile)

	f, err := os.Open(*in)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		log.Fatal(err)
	}

	const maxAddr = uint64(^uint32(0))
	if *start > maxAddr || uint64(st.Size()) > maxAddr-*start {
		log.Fatalf("Input of %d bytes does not fit in a 32-bit window starting at %#x", st.Size(), *start)
	}

	w, err := memwin.New(uint32(*start), uint32(*start)+uint32(st.Size()))
	if err != nil {
		log.Fatal(err)
	}

	n, err := w.LoadBin(f)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Read %d bytes", n)

	var outF io.Writer = os.Stdout
	if *out != "" {
		hexF, err := os.OpenFile(*out, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
		if err != nil {
			log.Fatal(err)
		}
		defer hexF.Close()
		outF = hexF
	}

	if err := w.StoreHex(outF); err != nil {
		log.Fatal(err)
	}
}
