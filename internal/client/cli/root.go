package cli

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/dmitrijs2005/gophprofile/internal/client/config"
	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"   // set by the linker
var gitCommit = "dev" // short commit SHA, set at build time
var buildDate = ""    // RFC3339, set at build time

// appKey carries the *App built in PersistentPreRunE down to RunE.
type appKey struct{}

// withApp runs fn with the App prepared for cmd and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(a *App) error) error {
	a, ok := cmd.Context().Value(appKey{}).(*App)
	if !ok {
		return fmt.Errorf("application not initialized")
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Error(cmd.Context(), "failed to close database", "error", err)
		}
	}()
	a.out = cmd.OutOrStdout()
	return fn(a)
}

// Root starts the interactive shell on stdin and blocks until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to gophprofile (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

// NewRootCmd builds the gophprofile command tree. Configuration is loaded and
// the App is built once per invocation in PersistentPreRunE, except for
// commands annotated with skipInit.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "gophprofile",
		Short:        "Local user accounts: register, log in, manage your profile and orders",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["skipInit"] == "true" {
				return nil
			}
			cfg, err := config.LoadConfig(v, config.ConfigFile(cmd.Flags()))
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LoggingOptions())
			if err != nil {
				return err
			}
			a, err := NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *App) error {
				a.Root(cmd.Context())
				return nil
			})
		},
	}

	if err := config.BindFlags(v, root.PersistentFlags()); err != nil {
		panic(err)
	}

	root.AddCommand(
		appCmd("register", "Create an account and log in", (*App).Register),
		appCmd("login", "Log in", (*App).Login),
		appCmd("logout", "Log out", (*App).Logout),
		appCmd("reset-password", "Reset a forgotten password by email", (*App).ForgotPassword),
		appCmd("profile", "Show your profile", (*App).Profile),
		appCmd("edit-profile", "Edit your profile", (*App).EditProfile),
		appCmd("passwd", "Change your password", (*App).ChangePassword),
		appCmd("status", "Show whether you are logged in", (*App).Status),
		newOrdersCmd(),
		newVersionCmd(),
	)
	return root
}

// appCmd wraps an App handler as a one-shot subcommand.
func appCmd(use, short string, run func(*App, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *App) error { return run(a, cmd.Context()) })
		},
	}
}

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List your orders",
		Long:  "Display the order history in table format.\nFilter with --status: " + statusList() + " (case-sensitive).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := cmd.Flags().GetString("status")
			return withApp(cmd, func(a *App) error { return a.Orders(cmd.Context(), status) })
		},
	}
	cmd.Flags().String("status", string(models.OrderStatusAll), "order status filter")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipInit": "true"},
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(readBuildInfo())
			fmt.Fprintf(cmd.OutOrStdout(), "gophprofile %s (commit %s, built %s)\n", v, c, d)
		},
	}
}

var readBuildInfo = func() *debug.BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return info
}

// resolveBuildVersion prefers linker-set values and falls back to the
// module version and VCS stamps recorded by the Go toolchain.
func resolveBuildVersion(info *debug.BuildInfo) (v, commit, date string) {
	v, commit, date = version, gitCommit, buildDate
	if info == nil {
		return v, commit, orNA(date)
	}
	if v == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "dev" && s.Value != "" {
				commit = s.Value
			}
		case "vcs.time":
			if date == "" {
				date = s.Value
			}
		}
	}
	return v, commit, orNA(date)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Execute runs the CLI entrypoint. cmd/client calls it and handles the exit code.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
