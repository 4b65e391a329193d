package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jask/tabnav/internal/config"
	"github.com/jask/tabnav/nav"
	"github.com/jask/tabnav/shell"
	"github.com/jask/tabnav/views"
)

// version is stamped by the build.
var version = "dev"

func newRoot() *cobra.Command {
	var (
		flagConfig   string
		flagOpen     string
		flagSignedIn bool
	)

	cmd := &cobra.Command{
		Use:   "tabnav",
		Short: "Tabbed shell demo for the navigation core",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flagConfig != "" {
				if err := os.Setenv("TABNAV_CONFIG", flagConfig); err != nil {
					return err
				}
			}
			return runShell(cmd.Context(), flagOpen, flagSignedIn)
		},
	}
	cmd.Flags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/tabnav/config.toml)")
	cmd.Flags().StringVar(&flagOpen, "open", "", "deep link to open on start, e.g. app://draft?round=3")
	cmd.Flags().BoolVar(&flagSignedIn, "signed-in", false, "start the demo session signed in")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tabnav "+version)
		},
	})
	return cmd
}

func runShell(ctx context.Context, openLink string, signedIn bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	reg, err := buildRegistry(cfg)
	if err != nil {
		return fmt.Errorf("views: %w", err)
	}

	obs, err := cfg.Nav.BuildObserver(navLogger())
	if err != nil {
		return err
	}

	relay := shell.NewTransitionRelay()
	session := shell.NewSession(signedIn || cfg.Session.SignedIn)

	ctrl, err := nav.NewController(nav.Config{
		Views:           reg,
		Observer:        nav.MultiObserver{obs, relay},
		Loader:          reg.Loader(),
		TransitionDelay: cfg.Nav.TransitionDelay(),
	})
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if _, err := ctrl.RegisterGuard(views.AuthGuard(reg, session.SignedIn)); err != nil {
		return err
	}

	// Canonicalize a deep link in place before the program starts, so the
	// back stack does not begin with a synthetic default-view entry.
	if openLink != "" {
		id, params, err := reg.ResolveLink(openLink)
		if err != nil {
			return fmt.Errorf("open: %w", err)
		}
		if err := ctrl.Replace(ctx, id, params); err != nil {
			return fmt.Errorf("open: %w", err)
		}
	}

	p := tea.NewProgram(shell.New(ctrl, reg, relay, session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	return nil
}

func buildRegistry(cfg config.Config) (*views.Registry, error) {
	if cfg.Views.Manifest != "" {
		return views.LoadManifest(afero.NewOsFs(), cfg.Views.Manifest)
	}
	return views.New(builtinViews(), nav.ViewID(cfg.Nav.DefaultView))
}

// builtinViews is the demo view set used when no manifest is configured.
func builtinViews() []views.View {
	noop := func(context.Context) error { return nil }
	return []views.View{
		{ID: "lobby", Title: "Lobby", Icon: "⌂", Path: "/lobby", PreserveState: true, Load: noop},
		{ID: "tournaments", Title: "Tournaments", Icon: "♛", Path: "/tournaments", PreserveState: true, Load: noop, Badge: views.StaticBadge(3)},
		{ID: "draft", Title: "Draft", Icon: "✎", Path: "/draft", PreserveState: true, Load: noop},
		{ID: "profile", Title: "Profile", Icon: "☺", Path: "/profile", RequiresAuth: true, PreserveState: true, Load: noop},
		{ID: "settings", Title: "Settings", Icon: "⚙", Path: "/settings", RequiresAuth: true, Load: noop},
	}
}

// navLogger writes transition records to a state file; stderr belongs to the
// TUI while the program runs.
func navLogger() *slog.Logger {
	var w io.Writer = io.Discard
	if dir, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(dir, ".local", "state", "tabnav")
		if err := os.MkdirAll(path, 0o755); err == nil {
			if f, err := os.OpenFile(filepath.Join(path, "nav.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				w = f
			}
		}
	}
	return slog.New(slog.NewTextHandler(w, nil))
}
