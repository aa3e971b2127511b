package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	appAuth "github.com/toyswap/toyswap/internal/application/auth"
	appExchange "github.com/toyswap/toyswap/internal/application/exchange"
	appItem "github.com/toyswap/toyswap/internal/application/item"
	"github.com/toyswap/toyswap/internal/application/mutation"
	"github.com/toyswap/toyswap/internal/config"
	"github.com/toyswap/toyswap/internal/domain/session"
	"github.com/toyswap/toyswap/internal/remote"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Host       string
	User       string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// App bundles the services a command needs.
type App struct {
	Config    *config.Config
	Session   session.Session
	Logger    zerolog.Logger
	Client    *remote.Client
	Auth      *appAuth.Service
	Items     *appItem.Service
	Exchanges *appExchange.Service
}

// NewApp loads configuration, applies flag overrides and wires services.
func NewApp(opts *RootOptions, logOut io.Writer) (*App, error) {
	cfg, err := config.LoadFile(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Host != "" {
		cfg.APIHost = opts.Host
	}
	if opts.User != "" {
		cfg.UserID = opts.User
	}

	level := cfg.Level()
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: logOut}).Level(level).With().Timestamp().Logger()

	client := remote.New(cfg.APIHost, logger, remote.WithTimeout(cfg.RequestTimeout))
	executor := mutation.NewExecutor(logger)

	return &App{
		Config:    cfg,
		Session:   cfg.Session(),
		Logger:    logger,
		Client:    client,
		Auth:      appAuth.NewService(client, cfg.APIHost, logger),
		Items:     appItem.NewService(client, executor, logger),
		Exchanges: appExchange.NewService(client, executor, logger),
	}, nil
}

// NewRootCommand creates the root command for exchangectl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "exchangectl",
		Short: "Swap toys with other users",
		Long:  "Command line client for the toy exchange service: list toys, propose exchanges and drive them to completion.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Host, "host", "", "exchange service URL")
	cmd.PersistentFlags().StringVar(&opts.User, "user", "", "acting user id")

	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewToysCommand(opts))
	cmd.AddCommand(NewExchangeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// setup builds the formatter and app for a command run.
func setup(opts *RootOptions, cmd *cobra.Command) (*OutputFormatter, *App, error) {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	app, err := NewApp(opts, cmd.ErrOrStderr())
	if err != nil {
		_ = formatter.Error("config", err.Error(), nil)
		return formatter, nil, &ExitError{Code: ExitCommandError, Message: "config", Err: err}
	}
	return formatter, app, nil
}
