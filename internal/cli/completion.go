package cli

import (
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/pkg/render"
	"github.com/matzehuels/labelsheet/pkg/sink"
)

// completionShells maps each supported shell to its script generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

// completionCommand prints a shell completion script. Besides subcommands
// and flags, the scripts complete format ids (built-in and those declared
// in the config file), output types and QR levels.
func (c *CLI) completionCommand() *cobra.Command {
	shells := make([]string, 0, len(completionShells))
	for name := range completionShells {
		shells = append(shells, name)
	}
	slices.Sort(shells)

	return &cobra.Command{
		Use:   "completion [bash|fish|powershell|zsh]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for labelsheet.

"labelsheet generate -f <TAB>" then lists every label format, including
formats defined under [[formats]] in your config file.`,
		Example: `  source <(labelsheet completion bash)
  labelsheet completion zsh > "${fpath[1]}/_labelsheet"
  labelsheet completion fish > ~/.config/fish/completions/labelsheet.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// registerGenerateCompletions wires value completion for the generate flags
// whose values come from a fixed or configured set.
func (c *CLI) registerGenerateCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		reg, err := c.cfg().Registry()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return reg.IDs(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(sink.Outputs(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("qr-level", cobra.FixedCompletions([]string{
		string(render.LevelLow), string(render.LevelMedium), string(render.LevelQuartile), string(render.LevelHigh),
	}, cobra.ShellCompDirectiveNoFileComp))
}
