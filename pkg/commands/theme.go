package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/commands/options"
	"tableflip.dev/dreamlog/pkg/prompt"
	"tableflip.dev/dreamlog/pkg/runner/theme"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "List or pick a colour theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				l := &theme.List{Base: base(svc)}
				return l.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)

	list := &cobra.Command{
		Use:   "list",
		Short: "List the colour themes",
		Args:  cobra.NoArgs,
		RunE:  cmd.RunE,
	}
	options.AddOutputArg(list, oo)

	set := &cobra.Command{
		Use:   "set [theme]",
		Short: "Pick the theme used by the UI",
		Example: `
dreamlog theme set midnight
dreamlog theme set
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				s := &theme.Set{Base: base(svc), Prompt: prompt.New()}
				if len(args) == 1 {
					s.ID = args[0]
				}
				return s.Do(ctx)
			})
		},
	}
	options.AddOutputArg(set, oo)

	css := &cobra.Command{
		Use:   "css [theme]",
		Short: "Print a theme as CSS custom properties",
		Example: `
dreamlog theme css > theme.css
dreamlog theme css rose
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				c := &theme.CSS{Base: base(svc)}
				if len(args) == 1 {
					c.ID = args[0]
				}
				return c.Do(ctx)
			})
		},
	}
	options.AddOutputArg(css, oo)

	cmd.AddCommand(list, set, css)
	topLevel.AddCommand(cmd)
}
