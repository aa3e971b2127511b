package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	appExchange "github.com/toyswap/toyswap/internal/application/exchange"
	"github.com/toyswap/toyswap/internal/domain/exchange"
	"github.com/toyswap/toyswap/internal/domain/session"
)

// NewExchangeCommand creates the exchange command group.
func NewExchangeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Propose and drive exchanges",
	}
	cmd.AddCommand(newExchangeProposeCommand(rootOpts))
	cmd.AddCommand(newExchangeViewCommand(rootOpts, "show", "Show an exchange", (*appExchange.Service).Get))
	cmd.AddCommand(newExchangeViewCommand(rootOpts, "confirm", "Take the next step of an exchange", (*appExchange.Service).Confirm))
	cmd.AddCommand(newExchangeViewCommand(rootOpts, "cancel", "Cancel an exchange", (*appExchange.Service).Cancel))
	cmd.AddCommand(newExchangeListCommand(rootOpts))
	return cmd
}

func newExchangeProposeCommand(rootOpts *RootOptions) *cobra.Command {
	var myToy, owner, theirToy string
	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Offer one of your toys for another user's toy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, app, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			v, err := app.Exchanges.Propose(cmd.Context(), app.Session, myToy, owner, theirToy)
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(v, func(w io.Writer) { renderView(w, v) })
		},
	}
	cmd.Flags().StringVar(&myToy, "my-toy", "", "id of the toy you offer")
	cmd.Flags().StringVar(&owner, "owner", "", "user id of the other owner")
	cmd.Flags().StringVar(&theirToy, "their-toy", "", "id of the toy you want")
	return cmd
}

type viewFunc func(*appExchange.Service, context.Context, session.Session, string) (*exchange.View, error)

func newExchangeViewCommand(rootOpts *RootOptions, name, short string, fn viewFunc) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <exchange-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, app, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			v, err := fn(app.Exchanges, cmd.Context(), app.Session, args[0])
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(v, func(w io.Writer) { renderView(w, v) })
		},
	}
}

func newExchangeListCommand(rootOpts *RootOptions) *cobra.Command {
	page := &pageOptions{}
	var statuses []string
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your exchanges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, app, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			var filter []exchange.Status
			for _, s := range statuses {
				st, err := exchange.ParseStatus(s)
				if err != nil {
					return formatter.Usage("unknown status " + s)
				}
				filter = append(filter, st)
			}

			var exs []*exchange.Exchange
			cursor := ""
			if all {
				exs, err = app.Exchanges.ListAll(cmd.Context(), app.Session, filter)
			} else {
				var p *exchange.Page
				p, err = app.Exchanges.List(cmd.Context(), app.Session, appExchange.ListInput{
					Statuses: filter,
					Limit:    page.limit,
					Cursor:   page.cursor,
				})
				if p != nil {
					exs, cursor = p.Exchanges, p.Cursor
				}
			}
			if err != nil {
				return formatter.Fail(err)
			}

			out := exchangeList{Exchanges: make([]*exchange.View, 0, len(exs)), Cursor: cursor}
			for _, ex := range exs {
				v, err := exchange.Project(ex, app.Session.UserID)
				if err != nil {
					return formatter.Fail(err)
				}
				out.Exchanges = append(out.Exchanges, v)
			}
			return formatter.Success(out, func(w io.Writer) { renderExchangeList(w, out) })
		},
	}
	page.bind(cmd)
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "filter by status (created, confirm, success, failed)")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")
	return cmd
}
