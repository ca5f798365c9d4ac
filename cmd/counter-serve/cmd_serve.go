package main

import (
	"github.com/spf13/cobra"

	"github.com/vcrobe/clickcounter/internal/devserver"
)

var (
	serveAddr  string
	serveDir   string
	serveMount string
	serveDebug bool
	serveAlert bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the counter page until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		srv, err := devserver.New(cfg, devserver.WithLogger(logger))
		if err != nil {
			return err
		}
		return srv.Run(cmd.Context())
	},
}

func init() {
	defaults := devserver.DefaultConfig()
	serveCmd.Flags().StringVar(&serveAddr, "addr", defaults.Addr, "Listen address")
	serveCmd.Flags().StringVar(&serveDir, "dir", defaults.Dir, "Directory holding main.wasm and wasm_exec.js")
	serveCmd.Flags().StringVar(&serveMount, "mount", "", "Render the counter into the element with this id")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging in the page")
	serveCmd.Flags().BoolVar(&serveAlert, "alert", false, "Alert on initialization failures in the page")
}

// loadConfig reads --config when given and applies explicitly set flags
// on top of it.
func loadConfig(cmd *cobra.Command) (devserver.Config, error) {
	cfg := devserver.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = devserver.LoadConfig(configPath); err != nil {
			return devserver.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = serveAddr
	}
	if flags.Changed("dir") {
		cfg.Dir = serveDir
	}
	if flags.Changed("mount") {
		cfg.Counter.Mount = serveMount
	}
	if flags.Changed("debug") {
		cfg.Counter.Debug = serveDebug
	}
	if flags.Changed("alert") {
		cfg.Counter.AlertOnError = serveAlert
	}
	return cfg, cfg.Validate()
}
