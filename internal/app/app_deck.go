package app

import (
	"context"
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/deck"
	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/perf"
	"github.com/andyrewlee/glide/internal/supervisor"
	"github.com/andyrewlee/glide/internal/ui/common"
)

const watcherMaxRestarts = 5

func loadDeckCmd(path string, seq int) tea.Cmd {
	return common.SafeCmd(func() tea.Msg {
		done := perf.Time("deck.load")
		slides, err := deck.ReadFile(path)
		done()
		if err != nil {
			err = fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}
		return messages.DeckLoaded{Path: path, Seq: seq, Slides: slides, Err: err}
	})
}

// reload puts the carousel back into loading and reads the deck again.
func (a *App) reload(reason string) tea.Cmd {
	logging.Info("reloading deck (%s): %s", reason, a.deckPath)
	a.loads++
	return common.SafeBatch(
		a.carousel.SetLoading(true),
		loadDeckCmd(a.deckPath, a.loads),
	)
}

func (a *App) handleDeckLoaded(msg messages.DeckLoaded) tea.Cmd {
	if msg.Seq != a.loads {
		logging.Debug("dropping superseded deck load %d (latest %d)", msg.Seq, a.loads)
		return nil
	}

	a.loadErr = msg.Err
	if msg.Err != nil {
		logging.Warn("deck load failed: %v", msg.Err)
		a.carousel.SetStatus(msg.Err.Error())
		return common.SafeBatch(
			a.carousel.SetSlides(nil),
			a.carousel.SetLoading(false),
			a.toast.ShowError(msg.Err.Error()),
		)
	}

	logging.Info("loaded %d slides from %s", len(msg.Slides), msg.Path)
	a.carousel.SetStatus("")
	return common.SafeBatch(
		a.carousel.SetSlides(msg.Slides),
		a.carousel.SetLoading(false),
	)
}

func (a *App) copyCurrentSlide() tea.Cmd {
	slide, ok := a.carousel.CurrentSlide()
	if !ok {
		return a.toast.ShowInfo("nothing to copy")
	}
	index, _ := a.carousel.Controller().CurrentIndex()
	text := slide.Text()
	return common.SafeCmd(func() tea.Msg {
		if err := common.CopyToClipboard(text); err != nil {
			return messages.Error{Err: err, Context: "copy slide"}
		}
		return messages.Toast{Message: fmt.Sprintf("copied slide %d", index+1), Level: messages.ToastSuccess}
	})
}

func (a *App) startWatcher() error {
	w, err := deck.NewWatcher(a.deckPath, func(path string) {
		a.post(messages.DeckChanged{Path: path})
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", a.deckPath, err)
	}
	a.watcher = w
	a.workers = supervisor.New(context.Background())
	a.workers.SetErrorHandler(func(name string, err error) {
		a.post(messages.Error{Err: err, Context: name, Logged: true})
	})
	a.workers.Start("deck-watcher", w.Run,
		supervisor.WithRestartPolicy(supervisor.RestartOnError),
		supervisor.WithMaxRestarts(watcherMaxRestarts),
	)
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
