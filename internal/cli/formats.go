package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/pkg/format"
)

// formatsCommand creates the formats command listing registered label formats.
func (c *CLI) formatsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "formats",
		Aliases: []string{"ls"},
		Short:   "List the available label formats",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.cfg().Registry()
			if err != nil {
				return err
			}
			formats := reg.Formats()
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Default string               `json:"default"`
					Formats []format.LabelFormat `json:"formats"`
				}{c.cfg().Options().Format, formats})
			}

			def := c.cfg().Options().Format
			fmt.Fprintln(out, formatTable(formats))
			printKeyValue("Default", def)
			printNextStep("Generate a sheet", "labelsheet generate -f "+def)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print formats as JSON")
	return cmd
}
