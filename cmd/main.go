package main

import (
	"fmt"
	"os"

	"github.com/abraham-ai/go-abraham-curation/cmd/abraham/launcher"
)

func main() {
	if err := launcher.Launch(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
