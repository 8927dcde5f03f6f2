package options

import (
	"github.com/spf13/cobra"
)

// YesOptions skips confirmation prompts.
type YesOptions struct {
	Yes bool
}

func AddYesArg(cmd *cobra.Command, o *YesOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		`Do not ask for confirmation.`)
}
