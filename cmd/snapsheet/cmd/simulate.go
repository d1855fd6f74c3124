package cmd

import (
	"fmt"

	"github.com/go-drift/snapsheet/cmd/snapsheet/internal/script"
)

func init() {
	RegisterCommand(&Command{
		Name:  "simulate",
		Short: "Replay a gesture script against a sheet",
		Long: `Replay a YAML script of pointer, key, and command events against a sheet
driven by a fake 60 Hz clock, and print the resulting timeline.

Script format:

  viewport: {width: 390, height: 844}
  initial: closed
  events:
    - drag: {from: 780, by: -300, frames: 12}   # full gesture
    - down: 400                                 # or step by step
    - move: 380
    - up: true
    - cancel: true
    - command: expand        # expand, collapse, to-first, to-last, toggle
    - key: ArrowDown         # ArrowUp, ArrowDown, Home, End, Enter, " "
    - snap: fully-open
    - wait: 200ms
    - settle: true
    - viewport: {width: 1280, height: 800}`,
		Usage: "snapsheet simulate <script.yaml>",
		Run:   runSimulate,
	})
}

func runSimulate(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: snapsheet simulate <script.yaml>")
	}
	sc, err := script.Load(args[0])
	if err != nil {
		return err
	}
	project, profile, err := loadProject()
	if err != nil {
		return err
	}

	timeline, err := script.Run(sc, script.Options{
		Sequence: project.File.SnapSequence(),
		Profile:  &profile,
		Initial:  project.File.InitialPoint(),
	})
	fmt.Fprintln(stdout, "FRAME      TIME  EVENT     DETAIL")
	for _, e := range timeline {
		fmt.Fprintln(stdout, e)
	}
	return err
}
