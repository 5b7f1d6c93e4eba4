package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	runNoVirtual bool
	runNoMirror  bool
	runStdin     string
)

// runCmd executes a single command string and exits with its code.
var runCmd = &cobra.Command{
	Use:   "run [flags] -- COMMAND...",
	Short: "Run one command string and exit with its code",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		command := strings.Join(args, " ")
		opts := baseOptions(cfg)
		if runNoVirtual {
			opts.VirtualCommands = false
		}
		if runNoMirror {
			opts.Mirror = false
		}
		if cmd.Flags().Changed("stdin") {
			opts.Stdin, opts.HasStdin = runStdin, true
		}

		runner := newEngine(cfg).NewRunner(command, opts)

		// First interrupt cancels the command rather than the CLI.
		interrupts := make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt)
		defer signal.Stop(interrupts)
		go func() {
			<-interrupts
			runner.Kill()
		}()

		res, err := runner.Run()
		if err != nil {
			return err
		}
		if !opts.Mirror {
			fmt.Fprint(cmd.OutOrStdout(), res.Stdout)
			fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
		}
		printExitStatus(res.Code)

		os.Exit(exitCodeForOS(res.Code))
		return nil
	},
}

func printExitStatus(code int) {
	if code == 0 {
		color.New(color.FgGreen).Fprintln(os.Stderr, "exit status 0")
		return
	}
	color.New(color.FgRed).Fprintf(os.Stderr, "exit status %d\n", code)
}

// exitCodeForOS clamps sentinel codes into the range the OS accepts.
func exitCodeForOS(code int) int {
	if code < 0 || code > 255 {
		return 255
	}
	return code
}

func init() {
	runCmd.Flags().BoolVarP(&runNoVirtual, "no-virtual", "n", false, "disable virtual commands, spawn everything")
	runCmd.Flags().BoolVar(&runNoMirror, "no-mirror", false, "buffer output instead of streaming it to the terminal")
	runCmd.Flags().StringVar(&runStdin, "stdin", "", "literal stdin content for the command")
	rootCmd.AddCommand(runCmd)
}
