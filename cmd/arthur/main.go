// Package main provides the arthur CLI, a terminal client for the Arthur chat bot.
package main

import (
	"fmt"
	"os"

	"arthurchat/internal/config"
	"arthurchat/internal/logger"
	"arthurchat/internal/services"
	"arthurchat/internal/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli holds the state shared by every subcommand of one invocation.
type cli struct {
	viper      *viper.Viper
	configFile string
	logLevel   string
	logFile    string
	testMode   bool

	// storeOpts lets tests pin the conversation clock and ids.
	storeOpts []services.ConversationStoreOption
	// workDir and configDir override file discovery; empty means the real directories.
	workDir   string
	configDir string

	app *App
}

func main() {
	if err := newRootCmd(&cli{viper: config.New()}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "arthur",
		Short: "Arthur - chat with the Arthur bot from your terminal",
		Long: `Arthur is a terminal client for the Arthur chat bot.
It keeps one persistent conversation, supports export and import, and renders
messages with the light, dark or academic theme.`,
		Version:       version.GetFormattedVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, c)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return c.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: warn]")
	flags.StringVar(&c.logFile, "log-file", "", "Write logs to file instead of stderr")
	flags.BoolVar(&c.testMode, "test-mode", false, "Ignore config and .env files")
	flags.StringVar(&c.configFile, "config", "", "Config file (default: arthur.yaml in the working or config directory)")
	flags.String("storage", "", "Storage backend (memory|file|bolt|sqlite)")
	flags.String("storage-dir", "", "Directory for durable storage")
	flags.String("backend-url", "", "Bot backend URL")
	flags.String("download-dir", "", "Directory for downloaded conversations")
	flags.Bool("no-color", false, "Disable colors and styling")

	for key, flag := range map[string]string{
		config.KeyStorageBackend: "storage",
		config.KeyStorageDir:     "storage-dir",
		config.KeyBackendURL:     "backend-url",
		config.KeyDownloadDir:    "download-dir",
		config.KeyNoColor:        "no-color",
		config.KeyLogLevel:       "log-level",
		config.KeyLogFile:        "log-file",
	} {
		if err := c.viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding %s flag: %v", flag, err))
		}
	}

	root.AddCommand(
		newChatCmd(c),
		newSendCmd(c),
		newHistoryCmd(c),
		newStatsCmd(c),
		newExportCmd(c),
		newDownloadCmd(c),
		newImportCmd(c),
		newClearCmd(c),
		newEditCmd(c),
		newDeleteCmd(c),
		newThemeCmd(c),
		newVersionCmd(),
	)
	return root
}

// load resolves configuration, configures logging and builds the App once per invocation.
func (c *cli) load() (*App, error) {
	if c.app != nil {
		return c.app, nil
	}

	cfg, err := config.Load(c.viper, config.Options{
		ConfigFile: c.configFile,
		ConfigDir:  c.configDir,
		WorkDir:    c.workDir,
		TestMode:   c.testMode,
	})
	if err != nil {
		return nil, err
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, c.testMode); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}
	logger.Debug("Configuration loaded", "sources", cfg.Sources, "storage", cfg.StorageBackend)

	app, err := NewApp(cfg, c.storeOpts...)
	if err != nil {
		return nil, err
	}
	c.app = app
	return app, nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			line := version.GetFormattedVersion()
			if version.IsPrerelease() {
				line += " (prerelease)"
			}
			fmt.Fprintln(out, line)
			info, err := version.GetInfo()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", info.GoVersion, info.Platform)
			return nil
		},
	}
}
