package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/toyswap/toyswap/internal/domain/item"
)

type pageOptions struct {
	limit  int
	cursor string
}

func (p *pageOptions) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.limit, "limit", 0, "page size (service default when 0)")
	cmd.Flags().StringVar(&p.cursor, "cursor", "", "cursor returned by the previous page")
}

// NewToysCommand creates the toys command group.
func NewToysCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toys",
		Short: "Manage your toys and browse the shop",
	}
	cmd.AddCommand(newToysListCommand(rootOpts, "mine", "List your toys"))
	cmd.AddCommand(newToysListCommand(rootOpts, "shop", "List toys other users offer for exchange"))
	cmd.AddCommand(newToysCreateCommand(rootOpts))
	cmd.AddCommand(newToysUpdateCommand(rootOpts))
	cmd.AddCommand(newToysShowCommand(rootOpts))
	cmd.AddCommand(newToysListedCommand(rootOpts, "list-for-exchange", "Offer a toy for exchange", true))
	cmd.AddCommand(newToysListedCommand(rootOpts, "unlist", "Stop offering a toy for exchange", false))
	cmd.AddCommand(newToysDeleteCommand(rootOpts))
	cmd.AddCommand(newToysPhotoCommand(rootOpts))
	return cmd
}

func newToysListCommand(rootOpts *RootOptions, name, short string) *cobra.Command {
	page := &pageOptions{}
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, app, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			list := app.Items.Mine
			if name == "shop" {
				list = app.Items.Shop
			}
			p, err := list(cmd.Context(), app.Session, page.limit, page.cursor)
			if err != nil {
				return formatter.Fail(err)
			}
			out := itemList{Items: p.Items, Cursor: p.Cursor}
			if out.Items == nil {
				out.Items = []*item.Item{}
			}
			return formatter.Success(out, func(w io.Writer) { renderItemList(w, out) })
		},
	}
	page.bind(cmd)
	return cmd
}

type draftOptions struct {
	name        string
	description string
	photo       string
}

func (d *draftOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.name, "name", "", "toy name")
	cmd.Flags().StringVar(&d.description, "description", "", "toy description")
	cmd.Flags().StringVar(&d.photo, "photo", "", "path to a photo to upload")
}

func (d *draftOptions) draft(cmd *cobra.Command) (item.Draft, error) {
	draft := item.Draft{Name: d.name}
	if cmd.Flags().Changed("description") {
		desc := d.description
		draft.Description = &desc
	}
	if d.photo != "" {
		data, err := os.ReadFile(d.photo)
		if err != nil {
			return item.Draft{}, fmt.Errorf("read photo: %w", err)
		}
		draft.Photo = &item.Photo{FileName: filepath.Base(d.photo), Data: data}
	}
	return draft, nil
}

func newToysCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &draftOptions{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a toy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, app, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			draft, err := opts.draft(cmd)
			if err != nil {
				return formatter.Usage(err.Error())
			}
			it, err := app.Items.Create(cmd.Context(), app.Session, draft)
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(it, func(w io.Writer) { renderItem(w, it) })
		},
	}
	opts.bind(cmd)
	return cmd
}

func newToysUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &draftOptions{}
	cmd := &cobra.Command{
		Use:   "update <toy-id>",
		Short: "Edit a toy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, app, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			draft, err := opts.draft(cmd)
			if err != nil {
				return formatter.Usage(err.Error())
			}
			it, err := app.Items.Update(cmd.Context(), app.Session, args[0], draft)
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(it, func(w io.Writer) { renderItem(w, it) })
		},
	}
	opts.bind(cmd)
	return cmd
}

func newToysShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <toy-id>",
		Short: "Show a toy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, app, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			it, err := app.Items.Get(cmd.Context(), app.Session, args[0])
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(it, func(w io.Writer) { renderItem(w, it) })
		},
	}
}

func newToysListedCommand(rootOpts *RootOptions, name, short string, listed bool) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <toy-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, app, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			it, err := app.Items.SetListed(cmd.Context(), app.Session, args[0], listed)
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(it, func(w io.Writer) { renderItem(w, it) })
		},
	}
}

func newToysDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <toy-id>",
		Short: "Remove a toy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, app, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			if err := app.Items.Delete(cmd.Context(), app.Session, args[0]); err != nil {
				return formatter.Fail(err)
			}
			data := map[string]string{"toy_id": args[0]}
			return formatter.Success(data, func(w io.Writer) { fmt.Fprintf(w, "Deleted toy %s\n", args[0]) })
		},
	}
}

func newToysPhotoCommand(rootOpts *RootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "photo <toy-id>",
		Short: "Download a toy's photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, app, err := setup(rootOpts, cmd)
			if err != nil {
				return err
			}
			if out == "" {
				return formatter.Usage("--out is required")
			}
			data, err := app.Items.Photo(cmd.Context(), app.Session, args[0])
			if err != nil {
				return formatter.Fail(err)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return formatter.Fail(&ExitError{Code: ExitCommandError, Message: "write", Err: err})
			}
			result := map[string]interface{}{"toy_id": args[0], "path": out, "bytes": len(data)}
			return formatter.Success(result, func(w io.Writer) {
				fmt.Fprintf(w, "Saved photo of %s to %s (%d bytes)\n", args[0], out, len(data))
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	return cmd
}
