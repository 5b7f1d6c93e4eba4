package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cmdstream/cmdstream/core/config"
	"github.com/cmdstream/cmdstream/core/engine"
	"github.com/cmdstream/cmdstream/core/trace"
)

var cfgPath string

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(afero.NewOsFs(), cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	trace.SetEnv(cfg.TraceEnv)
	return cfg, nil
}

func newEngine(cfg *config.Config) *engine.Engine {
	eng := engine.New()
	if cfg.DefaultShell != "" {
		eng.Shell = engine.ShellConfig{
			Path: cfg.DefaultShell,
			Args: []string{cfg.ShellArg},
		}
	}
	return eng
}

func baseOptions(cfg *config.Config) engine.Options {
	opts := engine.DefaultOptions()
	opts.Mirror = cfg.Mirror
	opts.VirtualCommands = cfg.VirtualCommands
	opts.ThrottleBytesPerSec = cfg.ThrottleBytesPerSec
	opts.MaxUnstreamedLines = cfg.MaxUnstreamedLines
	return opts
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cmdstream",
	Short: "Command string execution engine",
	Long: `Runs command strings through a restricted shell interpreter with
virtual builtin commands, streamed output and cancellation.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file or directory, omit for built-in defaults")
}
