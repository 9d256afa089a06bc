package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lemmago"
	"github.com/hupe1980/lemmago/codec"
)

type globalFlags struct {
	storage  storageFlags
	logLevel string
	codec    string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "lemmadict",
		Short:         "Build, inspect and query lemmago dictionaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	g.storage.register(pf)
	pf.StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&g.codec, "codec", codec.Default.Name(), fmt.Sprintf("JSON codec %v", codec.Names()))

	cmd.AddCommand(
		newBuildCmd(g),
		newInspectCmd(g),
		newAnalyzeCmd(g),
		newFormsCmd(g),
	)
	return cmd
}

func (g *globalFlags) logger() (*lemmago.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", g.logLevel, err)
	}
	return lemmago.NewTextLogger(level), nil
}

func (g *globalFlags) jsonCodec() (codec.Codec, error) {
	c, ok := codec.ByName(g.codec)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (want one of %v)", g.codec, codec.Names())
	}
	return c, nil
}

// writeJSON prints v as one line of JSON.
func writeJSON(cmd *cobra.Command, c codec.Codec, v any) error {
	b, err := c.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
