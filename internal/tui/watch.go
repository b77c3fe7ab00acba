package tui

import (
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"geopan/internal/geom"
	"geopan/internal/logging"
)

const reloadDelay = 250 * time.Millisecond

// reloadMsg carries a freshly loaded dataset into Update.
type reloadMsg struct {
	dataset *geom.Dataset
	err     error
}

// watcher reloads the dataset when its file, or any supported file in its
// directory, changes. Reloads are debounced; results arrive as reloadMsg.
type watcher struct {
	fw     *fsnotify.Watcher
	path   string
	single bool
	out    chan reloadMsg
	done   chan struct{}
}

func newWatcher(path string) (*watcher, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{
		fw:     fw,
		path:   filepath.Clean(path),
		single: !info.IsDir(),
		out:    make(chan reloadMsg, 1),
		done:   make(chan struct{}),
	}
	dir := w.path
	if w.single {
		// editors replace files by rename; watch the parent instead
		dir = filepath.Dir(w.path)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

func (w *watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if w.single {
		return filepath.Clean(ev.Name) == w.path
	}
	return geom.Supported(ev.Name)
}

func (w *watcher) run() {
	defer close(w.out)
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			logging.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("dataset changed")
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			fire = timer.C
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logging.Warn().Err(err).Msg("watch error")
		case <-fire:
			fire = nil
			ds, err := geom.LoadDataset(w.path)
			select {
			case w.out <- reloadMsg{dataset: ds, err: err}:
			case <-w.done:
				return
			}
		}
	}
}

// next waits for the following reload.
func (w *watcher) next() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-w.out
		if !ok {
			return nil
		}
		return msg
	}
}

func (w *watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
		close(w.done)
	}
	return w.fw.Close()
}
