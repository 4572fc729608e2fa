package app

import (
	"fmt"
	"strings"
	"sync"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/deck"
	"github.com/andyrewlee/glide/internal/keymap"
	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/perf"
	"github.com/andyrewlee/glide/internal/supervisor"
	"github.com/andyrewlee/glide/internal/ui/carousel"
	"github.com/andyrewlee/glide/internal/ui/common"
)

// Options configures the application shell.
type Options struct {
	DeckPath string
	Watch    bool
}

// App is the root bubbletea model. It owns the carousel, loads the deck and
// keeps it in sync with the file on disk.
type App struct {
	cfg      *config.Config
	deckPath string
	watch    bool

	carousel *carousel.Model
	toast    *common.ToastModel
	keymap   keymap.KeyMap
	zone     *zone.Manager

	watcher *deck.Watcher
	workers *supervisor.Supervisor

	width    int
	height   int
	loadErr  error
	loads    int
	quitting bool

	outbox       *outbox
	shutdownOnce sync.Once
}

// New creates the application for the deck at opts.DeckPath.
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		var err error
		if cfg, err = config.DefaultConfig(); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(opts.DeckPath) == "" {
		return nil, fmt.Errorf("deck path is required")
	}

	km := keymap.New(cfg.KeyMap)
	z := zone.New()
	c := carousel.New(cfg.Slider, km)
	c.SetZone(z)

	return &App{
		cfg:      cfg,
		deckPath: opts.DeckPath,
		watch:    opts.Watch,
		carousel: c,
		toast:    common.NewToastModel(),
		keymap:   km,
		zone:     z,
		outbox:   newOutbox(outboxSize),
	}, nil
}

// Init loads the deck and starts watching it.
func (a *App) Init() tea.Cmd {
	if a.watch {
		if err := a.startWatcher(); err != nil {
			logging.Warn("deck watcher disabled: %v", err)
		}
	}
	a.loads++
	return common.SafeBatch(a.carousel.Init(), loadDeckCmd(a.deckPath, a.loads))
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, a.keymap.Quit):
			a.quitting = true
			a.Shutdown()
			return a, tea.Quit
		case key.Matches(msg, a.keymap.Copy):
			return a, a.copyCurrentSlide()
		case key.Matches(msg, a.keymap.Reload):
			return a, a.reload("manual reload")
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case messages.DeckLoaded:
		return a, a.handleDeckLoaded(msg)
	case messages.DeckChanged:
		if msg.Path != "" && !samePath(msg.Path, a.deckPath) {
			logging.Debug("ignoring change for %s", msg.Path)
			return a, nil
		}
		return a, a.reload("deck changed")
	case messages.SlideChanged:
		logging.Debug("current slide: %d", msg.Index)
		return a, nil
	case messages.Toast:
		return a, a.showToast(msg)
	case messages.Error:
		return a, a.handleError(msg)
	case common.ToastDismissed:
		a.toast.Update(msg)
		return a, nil
	}

	_, cmd := a.carousel.Update(msg)
	return a, cmd
}

// View renders the carousel with any toast over the status line.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	if a.quitting {
		view.SetContent("")
		return view
	}

	content := a.carousel.View()
	if toast := a.toast.View(); toast != "" && content != "" {
		lines := strings.Split(content, "\n")
		lines[len(lines)-1] = ansi.Truncate(toast, max(1, a.width), "…")
		content = strings.Join(lines, "\n")
	}
	view.SetContent(a.zone.Scan(content))
	return view
}

// Shutdown stops the watcher and the carousel. Safe to call more than once.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		a.carousel.Close()
		a.workers.Stop()
		if a.watcher != nil {
			if err := a.watcher.Close(); err != nil {
				logging.Warn("closing deck watcher: %v", err)
			}
		}
		a.zone.Close()
		perf.Flush("shutdown")
	})
}

func (a *App) handleError(msg messages.Error) tea.Cmd {
	if !msg.Logged {
		logging.Error("%s", msg.Error())
	}
	return a.toast.ShowError(msg.Error())
}

func (a *App) showToast(msg messages.Toast) tea.Cmd {
	switch msg.Level {
	case messages.ToastSuccess:
		return a.toast.ShowSuccess(msg.Message)
	case messages.ToastError:
		return a.toast.ShowError(msg.Message)
	default:
		return a.toast.ShowInfo(msg.Message)
	}
}
