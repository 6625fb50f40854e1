package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script and print it to stdout.

  bash:        source <(templatedesigner completion bash)
  zsh:         templatedesigner completion zsh > "${fpath[1]}/_templatedesigner"
  fish:        templatedesigner completion fish | source
  powershell:  templatedesigner completion powershell | Out-String | Invoke-Expression

Template ids complete from the configured store.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeTemplateIDs completes the first argument with stored template ids.
func (c *CLI) completeTemplateIDs(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	st, err := c.openStore(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer st.Close()
	list, err := st.List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	out := make([]cobra.Completion, 0, len(list))
	for _, s := range list {
		out = append(out, cobra.CompletionWithDesc(s.ID, s.Name))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// registerCompletions installs template id completion on every command
// whose first argument is a template.
func (c *CLI) registerCompletions(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		if takesTemplate(sub.Use) && sub.ValidArgsFunction == nil {
			sub.ValidArgsFunction = c.completeTemplateIDs
		}
		c.registerCompletions(sub)
	}
}

func takesTemplate(use string) bool {
	f := strings.Fields(use)
	if len(f) < 2 {
		return false
	}
	switch f[1] {
	case "<template>", "<id>", "[id]", "<id>...":
		return true
	}
	return false
}
