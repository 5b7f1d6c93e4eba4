package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// replCmd runs an interactive loop, feeding each line to the engine.
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive prompt running each line through the engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng := newEngine(cfg)

		rlCfg := &readline.Config{
			Prompt:          replPrompt(0),
			InterruptPrompt: "^C",
		}
		if err := rlCfg.Init(); err != nil {
			return err
		}
		rl, err := readline.NewEx(rlCfg)
		if err != nil {
			return err
		}
		defer rl.Close()

		lastCode := 0
		for {
			rl.SetPrompt(replPrompt(lastCode))
			line, err := rl.Readline()
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				return nil
			}

			runner := eng.NewRunner(line, baseOptions(cfg))

			interrupts := make(chan os.Signal, 1)
			signal.Notify(interrupts, os.Interrupt)
			go func() {
				if _, open := <-interrupts; open {
					runner.Kill()
				}
			}()

			res, runErr := runner.Run()
			signal.Stop(interrupts)
			close(interrupts)
			if runErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), runErr)
				continue
			}
			lastCode = res.Code
		}
	},
}

// replPrompt colors the prompt marker by the previous exit code.
func replPrompt(lastCode int) string {
	marker := color.GreenString("$")
	if lastCode != 0 {
		marker = color.RedString("$")
	}
	return fmt.Sprintf("cmdstream %s ", marker)
}

func init() {
	rootCmd.AddCommand(replCmd)
}
