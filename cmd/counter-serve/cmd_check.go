package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vcrobe/clickcounter/internal/devserver"
	"github.com/vcrobe/clickcounter/web"
)

var checkCmd = &cobra.Command{
	Use:   "check [page.html]",
	Short: "Check that a host page carries the counter's elements",
	Long: `check parses an HTML page and verifies that the display and trigger
ids from the configuration each occur exactly once. Without an argument
the built-in page is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := devserver.DefaultConfig()
		if configPath != "" {
			var err error
			if cfg, err = devserver.LoadConfig(configPath); err != nil {
				return err
			}
		}

		var src io.Reader = bytes.NewReader(web.Index)
		name := "built-in page"
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open page")
			}
			defer f.Close()
			src, name = f, args[0]
		}

		problems, err := devserver.Check(src, cfg.Counter)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range problems {
			fmt.Fprintf(out, "%s: %s\n", name, p)
		}
		if len(problems) > 0 {
			return errors.Errorf("%s: %d problem(s)", name, len(problems))
		}
		logger.Debug("page ok", zap.String("page", name))
		fmt.Fprintf(out, "%s: ok\n", name)
		return nil
	},
}
