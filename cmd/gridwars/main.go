package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) //nolint:forbidigo // last resort before exit
		os.Exit(1)
	}
}
