package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/andyrewlee/glide/internal/app"
	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/safego"
	"github.com/andyrewlee/glide/internal/validation"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var noWatch bool
	cmd := &cobra.Command{
		Use:          "glide <deck-file>",
		Short:        "Terminal slide carousel",
		Long:         "glide shows a deck of slides as a horizontally scrolling carousel that\nadvances on its own and reloads when the deck file changes.",
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(args[0], !noWatch)
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the deck when the file changes")
	return cmd
}

func runTUI(deckPath string, watch bool) error {
	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		return errors.New("glide needs an interactive terminal")
	}
	deckPath, err := validation.ValidateDeckPath(deckPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create %s: %v\n", cfg.Paths.Home, err)
	}
	if err := logging.Initialize(cfg.Paths.LogsRoot, logging.ParseLevel(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	logging.Info("Starting glide %s with %s", version, deckPath)

	a, err := app.New(cfg, app.Options{DeckPath: deckPath, Watch: watch})
	if err != nil {
		logging.Error("Failed to initialize app: %v", err)
		return err
	}

	p := tea.NewProgram(a, tea.WithFilter(mouseEventFilter))
	a.SetMsgSender(p.Send)
	safego.SetPanicHandler(func(name string, recovered any, _ []byte) {
		p.Send(messages.Error{Err: fmt.Errorf("panic: %v", recovered), Context: name, Logged: true})
	})

	_, err = p.Run()
	a.Shutdown()
	if err != nil {
		logging.Error("App exited with error: %v", err)
		return err
	}
	logging.Info("glide shutdown complete")
	return nil
}

var lastMouseWheelEvent time.Time

// mouseEventFilter drops wheel events arriving faster than one per frame so a
// trackpad fling does not flood the update loop.
func mouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseMotionMsg:
		return nil
	case tea.MouseWheelMsg:
		now := time.Now()
		if now.Sub(lastMouseWheelEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseWheelEvent = now
	}
	return msg
}
