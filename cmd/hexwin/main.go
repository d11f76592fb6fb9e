package main

import "github.com/hexwin/hexwin/cmd/hexwin/cmd"

func main() {
	cmd.Execute()
}
