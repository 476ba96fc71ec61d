package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command that emits shell
// completion scripts on stdout.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Long: `Generate a completion script for your shell, enabling tab
completion of shapecanvas commands and flags.

The script is written to stdout. Load it for the current session:

  bash:       source <(shapecanvas completion bash)
  zsh:        source <(shapecanvas completion zsh)
  fish:       shapecanvas completion fish | source
  powershell: shapecanvas completion powershell | Out-String | Invoke-Expression

Or install it permanently:

  bash (Linux):  shapecanvas completion bash > /etc/bash_completion.d/shapecanvas
  bash (macOS):  shapecanvas completion bash > $(brew --prefix)/etc/bash_completion.d/shapecanvas
  zsh:           shapecanvas completion zsh > "${fpath[1]}/_shapecanvas"
  fish:          shapecanvas completion fish > ~/.config/fish/completions/shapecanvas.fish

zsh users may first need to enable completion with
"autoload -U compinit; compinit" in ~/.zshrc.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
