package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lemmago/dict"
)

type inspectResult struct {
	Name        string        `json:"name"`
	Format      string        `json:"format"`
	Fingerprint string        `json:"fingerprint"`
	Bytes       int64         `json:"bytes"`
	Mapped      bool          `json:"mapped"`
	LoadTime    time.Duration `json:"load_time_ns"`
	Stats       *dict.Stats   `json:"stats,omitempty"`
}

func newInspectCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <name>...",
		Short: "Print the fingerprint and table sizes of dictionaries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.jsonCodec()
			if err != nil {
				return err
			}
			reg, err := g.registry(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			for _, name := range args {
				d, err := reg.Get(cmd.Context(), name)
				if err != nil {
					return err
				}
				res := inspectResult{
					Name:        d.Name,
					Format:      d.Format.String(),
					Fingerprint: d.Data.Fingerprint(),
					Bytes:       d.Size,
					Mapped:      d.Mapped,
					LoadTime:    d.LoadTime,
				}
				if s, ok := d.Data.(interface{ Stats() dict.Stats }); ok {
					stats := s.Stats()
					res.Stats = &stats
				}
				if err := writeJSON(cmd, c, res); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
