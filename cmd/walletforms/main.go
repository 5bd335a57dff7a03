package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Version is set during build using ldflags
var Version = "dev"

func main() {
	a := newApp(os.Stdout, os.Stderr)
	if err := a.command().Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errInvalidValues) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
