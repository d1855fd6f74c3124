package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/go-drift/snapsheet/pkg/responsive"
)

func init() {
	RegisterCommand(&Command{
		Name:  "resolve",
		Short: "Show the configuration for a viewport width",
		Long: `Resolve the responsive configuration for a viewport width.

Prints the device class, the spring and duration used for transitions, the
release velocity threshold, and each snap point's extent, position
threshold, and visibility flags.`,
		Usage: "snapsheet resolve <width>",
		Run:   runResolve,
	})
}

func runResolve(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: snapsheet resolve <width>")
	}
	width, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid width %q", args[0])
	}

	project, profile, err := loadProject()
	if err != nil {
		return err
	}
	resolver, err := responsive.NewResolver(profile, project.File.SnapSequence())
	if err != nil {
		return err
	}
	table := resolver.Resolve(width)

	source := "built-in defaults"
	if project.ConfigPath != "" {
		source = project.ConfigPath
	}
	fmt.Fprintf(stdout, "Config:    %s\n", source)
	fmt.Fprintf(stdout, "Width:     %g (%s)\n", width, table.Device)
	fmt.Fprintf(stdout, "Spring:    tension=%g friction=%g mass=%g (damping ratio %.3f)\n",
		table.Spring.Tension, table.Spring.Friction, table.Spring.Mass, table.Spring.DampingRatio())
	fmt.Fprintf(stdout, "Duration:  %s\n", table.Duration)
	fmt.Fprintf(stdout, "Velocity:  %g px/ms\n", table.VelocityThreshold)
	fmt.Fprintln(stdout)

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINT\tEXTENT\tTHRESHOLD\tCONTENT\tAUX\tMAX")
	for _, p := range table.Sequence() {
		sc := table.Snap(p)
		fmt.Fprintf(w, "%s\t%s\t%g\t%s\t%s\t%s\n",
			p, sc.Extent, sc.PositionThreshold, yesNo(sc.ContentVisible), yesNo(sc.ShowAuxiliaryControls), sc.MaxExtent)
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
