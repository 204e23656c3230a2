package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/remotedeck/remotedeck/internal/infrastructure/config"
	"github.com/remotedeck/remotedeck/internal/infrastructure/system"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "remotedeck",
	Short: "Control panel backend for remote button and fader decks",
	Long: `remotedeck keeps a workspace of profiles, pages, folders, buttons and
faders, serves it to remote panels over HTTP and websockets, and runs the
action bound to a control when it is pressed: hotkeys, text, media keys,
URLs, applications, MIDI messages and page navigation.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.remotedeck/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("workspace", "", "workspace file (overrides workspace.path)")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
}

// initConfig binds REMOTEDECK_* environment variables. The config file
// itself is read by the system loader.
func initConfig() {
	viper.SetEnvPrefix("remotedeck")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		cfgFile = viper.GetString("config")
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose || viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// loadRuntimeConfig reads the system config and applies flag and
// environment overrides.
func loadRuntimeConfig() (*config.RuntimeConfig, error) {
	path := cfgFile
	if path == "" {
		path = system.DefaultPath()
	}
	sys, err := system.NewConfigLoader().Load(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded system config", "path", path)

	rc := config.FromSystemConfig(sys)
	applyOverrides(rc, viper.GetViper())
	rc.ApplyDefaults()
	return rc, nil
}

func applyOverrides(rc *config.RuntimeConfig, v *viper.Viper) {
	if s := v.GetString("listen"); s != "" {
		rc.ListenAddr = s
	}
	if s := v.GetString("workspace"); s != "" {
		rc.WorkspacePath = system.ExpandHome(s)
	}
	if s := v.GetString("security-level"); s != "" {
		rc.SecurityLevel = s
	}
	if v.GetBool("ephemeral") {
		rc.Ephemeral = true
	}
}
