// Command snapsheet inspects and exercises the snap sheet engine.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-drift/snapsheet/cmd/snapsheet/cmd"
	sheeterrors "github.com/go-drift/snapsheet/pkg/errors"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		var se *sheeterrors.SheetError
		if errors.As(err, &se) {
			sheeterrors.Report(se)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
