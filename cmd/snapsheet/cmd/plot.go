package cmd

import (
	"fmt"
	"image/png"
	"os"
	"strconv"

	"github.com/go-drift/snapsheet/cmd/snapsheet/internal/plot"
	"github.com/go-drift/snapsheet/pkg/responsive"
)

func init() {
	RegisterCommand(&Command{
		Name:  "plot",
		Short: "Plot transition spring curves to a PNG",
		Long: `Plot the spring easing curve of each device class to a PNG.

With -w only the device class resolved for that viewport width is plotted.
The horizontal axis is linear transition progress; values above 1 are
overshoot.

Flags:
  -o FILE     Output path (default: spring.png)
  -w WIDTH    Plot only the device class for this viewport width`,
		Usage: "snapsheet plot [-o out.png] [-w width]",
		Run:   runPlot,
	})
}

func runPlot(args []string) error {
	out := "spring.png"
	width := -1.0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a file path", args[i])
			}
			out = args[i+1]
			i++
		case "-w", "--width":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a width", args[i])
			}
			v, err := strconv.ParseFloat(args[i+1], 64)
			if err != nil || v < 0 {
				return fmt.Errorf("invalid width %q", args[i+1])
			}
			width = v
			i++
		default:
			return fmt.Errorf("unknown flag %q", args[i])
		}
	}

	project, profile, err := loadProject()
	if err != nil {
		return err
	}
	resolver, err := responsive.NewResolver(profile, project.File.SnapSequence())
	if err != nil {
		return err
	}

	devices := responsive.DeviceClasses
	if width >= 0 {
		devices = []responsive.DeviceClass{resolver.Classify(width)}
	}
	curves := make([]plot.Curve, len(devices))
	for i, d := range devices {
		table := resolver.ForDevice(d)
		curves[i] = plot.Curve{
			Label:  fmt.Sprintf("%s %s", d, table.Duration),
			Spring: table.Spring,
			Color:  plot.Palette[i%len(plot.Palette)],
		}
	}

	opts := plot.DefaultOptions
	opts.Title = "snapsheet spring ease"
	if project.Name != "" {
		opts.Title += " (" + project.Name + ")"
	}
	img := plot.Render(curves, opts)

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s (%d curves)\n", out, len(curves))
	return nil
}
