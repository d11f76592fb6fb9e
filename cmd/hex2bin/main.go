package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/hexwin/hexwin/memwin"
)

func main() {
	in := flag.String("in", "", "Input hex file")
	out := flag.String("out", "", "Output bin file (stdout if empty)")
	start := flag.Uint64("start", 0, "First address of the window")
	end := flag.Uint64("end", 0, "One past the last address of the window")

	flag.Parse()

	log.SetFlags(log.Lmicroseconds | log.Lshortfile)

	if *end <= *start {
		log.Fatalf("Need -end > -start (got [%#x, %#x))", *start, *end)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	w, err := memwin.New(uint32(*start), uint32(*end))
	if err != nil {
		log.Fatal(err)
	}

	span, err := w.LoadHex(f)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Captured %d byte span over %d records", span, len(w.Records()))

	var outF io.Writer = os.Stdout
	if *out != "" {
		binF, err := os.OpenFile(*out, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
		if err != nil {
			log.Fatal(err)
		}
		defer binF.Close()
		outF = binF
	}

	if _, err := outF.Write(w.Bytes()); err != nil {
		log.Fatal(err)
	}
}
