// Package cmd implements the snapsheet CLI commands.
//
// The root command dispatches to subcommands (resolve, simulate, plot) and
// handles the global --config flag.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/snapsheet/pkg/config"
	sheeterrors "github.com/go-drift/snapsheet/pkg/errors"
	"github.com/go-drift/snapsheet/pkg/responsive"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "snapsheet",
	Short: "snapsheet - snap point sheet engine tools",
	Long: `snapsheet resolves responsive sheet configuration, replays gesture
scripts against the sheet engine, and plots transition curves.

Use "snapsheet <command> --help" for more information about a command.`,
	Usage: "snapsheet <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// stdout is where commands write their reports.
var stdout io.Writer = os.Stdout

// configPath is the --config flag value.
var configPath string

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	configPath = ""
	verbose := false

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "snapsheet version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			verbose = true
		case "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			configPath = args[i+1]
			i++
		default:
			if strings.HasPrefix(arg, "--config=") {
				configPath = strings.TrimPrefix(arg, "--config=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs
	sheeterrors.SetHandler(&sheeterrors.LogHandler{Verbose: verbose})

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

// loadProject resolves configuration for the working directory and the
// --config flag.
func loadProject() (*config.Project, responsive.Profile, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, responsive.Profile{}, err
	}
	project, err := config.Resolve(dir, configPath)
	if err != nil {
		return nil, responsive.Profile{}, err
	}
	profile, err := project.File.Profile()
	if err != nil {
		return nil, responsive.Profile{}, sheeterrors.Config("config.Profile", err)
	}
	return project, profile, nil
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --verbose            Include stack traces in error reports")
	fmt.Fprintln(stdout, "  --config FILE        Config file (default: snapsheet.yaml in the module root)")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  snapsheet resolve 390            Show the mobile configuration")
	fmt.Fprintln(stdout, "  snapsheet simulate fling.yaml    Replay a gesture script")
	fmt.Fprintln(stdout, "  snapsheet plot -o spring.png     Plot the desktop spring curve")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
