package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/commands/options"
	"tableflip.dev/dreamlog/pkg/prompt"
	"tableflip.dev/dreamlog/pkg/runner/account"
)

func addAccount(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the signed in account",
	}

	password := &cobra.Command{
		Use:   "password",
		Short: "Change the password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				p := &account.Password{Base: base(svc), Prompt: prompt.New()}
				return p.Do(ctx)
			})
		},
	}
	options.AddOutputArg(password, oo)

	username := &cobra.Command{
		Use:   "username <name>",
		Short: "Change the username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				u := &account.Username{Base: base(svc), Username: args[0]}
				return u.Do(ctx)
			})
		},
	}
	options.AddOutputArg(username, oo)

	yo := &options.YesOptions{}
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account and every dream in it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				d := &account.Delete{Base: base(svc), Yes: yo.Yes, Prompt: prompt.New()}
				return d.Do(ctx)
			})
		},
	}
	options.AddYesArg(del, yo)
	options.AddOutputArg(del, oo)

	cmd.AddCommand(password, username, del)
	topLevel.AddCommand(cmd)
}
