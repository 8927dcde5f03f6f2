package commands

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/commands/options"
	"tableflip.dev/dreamlog/pkg/prompt"
	"tableflip.dev/dreamlog/pkg/runner/auth"
)

func addRegister(topLevel *cobra.Command) {
	r := &auth.Register{}
	var passwordStdin bool
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Example: `
dreamlog register
dreamlog register --email me@example.com --username dreamer
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				r.Base = base(svc)
				r.Prompt = prompt.New()
				if passwordStdin {
					pw, err := readPassword(cmd)
					if err != nil {
						return err
					}
					r.Password, r.Confirm = pw, pw
				}
				return r.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&r.Email, "email", "", "Email address.")
	cmd.Flags().StringVar(&r.Username, "username", "", "Username, 3 to 20 letters, digits or underscores.")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addLogin(topLevel *cobra.Command) {
	l := &auth.Login{}
	var passwordStdin bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Example: `
dreamlog login
dreamlog login --email me@example.com
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				l.Base = base(svc)
				l.Prompt = prompt.New()
				if passwordStdin {
					pw, err := readPassword(cmd)
					if err != nil {
						return err
					}
					l.Password = pw
				}
				return l.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&l.Email, "email", "", "Email address.")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				l := &auth.Logout{Base: base(svc)}
				return l.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addWhoami(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				w := &auth.Whoami{Base: base(svc)}
				return w.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func readPassword(cmd *cobra.Command) (string, error) {
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	pw := strings.TrimRight(string(b), "\r\n")
	if pw == "" {
		return "", errors.New("no password on stdin")
	}
	return pw, nil
}
