package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/toyswap/toyswap/internal/config"
	"github.com/toyswap/toyswap/internal/domain/session"
	"github.com/toyswap/toyswap/internal/domain/user"
)

type registerOptions struct {
	firstName       string
	lastName        string
	middleName      string
	email           string
	password        string
	confirmPassword string
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &registerOptions{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account on the exchange service.

When --config is given, the new session is saved to that file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, app, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			reg := user.Registration{
				Name:            user.Name{FirstName: opts.firstName, LastName: opts.lastName},
				Email:           opts.email,
				Password:        opts.password,
				ConfirmPassword: opts.confirmPassword,
			}
			if opts.middleName != "" {
				reg.Name.MiddleName = &opts.middleName
			}
			if reg.ConfirmPassword == "" {
				reg.ConfirmPassword = reg.Password
			}
			sess, err := app.Auth.Register(cmd.Context(), reg)
			if err != nil {
				return formatter.Fail(err)
			}
			return saveAndReport(formatter, rootOpts, sess, "Registered")
		},
	}
	cmd.Flags().StringVar(&opts.firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&opts.lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&opts.middleName, "middle-name", "", "middle name")
	cmd.Flags().StringVar(&opts.email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.password, "password", "", "password")
	cmd.Flags().StringVar(&opts.confirmPassword, "confirm-password", "", "password confirmation (defaults to --password)")
	return cmd
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the user id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, app, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			sess, err := app.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return formatter.Fail(err)
			}
			return saveAndReport(formatter, rootOpts, sess, "Logged in")
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func saveAndReport(formatter *OutputFormatter, opts *RootOptions, sess session.Session, verb string) error {
	saved := ""
	if opts.ConfigPath != "" {
		if err := config.SaveSession(opts.ConfigPath, sess); err != nil {
			return formatter.Fail(&ExitError{Code: ExitCommandError, Message: "config", Err: err})
		}
		saved = opts.ConfigPath
	}
	return formatter.Success(sess, func(w io.Writer) {
		fmt.Fprintf(w, "%s as %s\n", verb, sess.UserID)
		if saved != "" {
			fmt.Fprintf(w, "Session saved to %s\n", saved)
		} else {
			fmt.Fprintf(w, "Pass --user %s or set EXCHANGE_USER_ID to act as this user\n", sess.UserID)
		}
	})
}
