package main

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/roster-cli/internal/config"
)

var chambersCmd = &cobra.Command{
	Use:   "chambers",
	Short: "Print the effective chamber configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeChambers(cmd.OutOrStdout(), cfg.Chambers)
	},
}

func init() {
	rootCmd.AddCommand(chambersCmd)
}

// writeChambers encodes chambers under a top-level "chambers" key, so the
// output can be pasted into config.yaml.
func writeChambers(w io.Writer, chambers []config.ChamberConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := struct {
		Chambers []config.ChamberConfig `yaml:"chambers"`
	}{chambers}
	if err := enc.Encode(doc); err != nil {
		return eris.Wrap(err, "chambers: encode yaml")
	}
	return eris.Wrap(enc.Close(), "chambers: flush yaml")
}
