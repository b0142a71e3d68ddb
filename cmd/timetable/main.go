package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"timetable/internal/faults"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			if kind := faults.Classify(err); kind != faults.KindInternal {
				fmt.Fprintf(os.Stderr, "hint (%s): %s\n", kind, faults.Hint(kind))
			}
		}
		os.Exit(1)
	}
}
