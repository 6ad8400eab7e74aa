package main

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/earthboundkid/versioninfo/v2"
	"github.com/spf13/cobra"

	"github.com/ironsheep/png-crop/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries the state shared by every subcommand once the root command
// has loaded configuration.
type app struct {
	cfg    config.Config
	log    *log.Logger
	stderr io.Writer

	envFile  string
	logLevel string
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stderr)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	rootCmd := &cobra.Command{
		Use:     "png-crop",
		Short:   "Lossless PNG cropping",
		Long:    `Crop PNG files without decoding them into an image: bit depth, palette and metadata are preserved.`,
		Version: versioninfo.Short(),

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	// Logs go to stderr; stdout carries command output and MCP traffic
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Path to an optional .env file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides "+config.EnvLogLevel)

	rootCmd.AddCommand(
		newCropCmd(a),
		newInfoCmd(a),
		newVerifyCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads configuration and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	a.cfg = cfg
	a.log = &log.Logger{
		Handler: cli.New(a.stderr),
		Level:   level,
	}
	return nil
}
