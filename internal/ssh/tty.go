// Package ssh adapts gliderlabs/ssh sessions to tcell so each connection can
// drive its own game screen.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTTY implements tcell.Tty on top of an SSH session. Window changes
// requested by the client are forwarded to tcell's resize callback.
type SessionTTY struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	cb     func()

	watch     sync.Once
	done      chan struct{}
	closeOnce sync.Once
}

// NewSessionTTY wraps s. pty carries the initial window; winCh delivers
// later resizes.
func NewSessionTTY(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTTY {
	return &SessionTTY{
		session: s,
		winCh:   winCh,
		window:  pty.Window,
		done:    make(chan struct{}),
	}
}

func (t *SessionTTY) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *SessionTTY) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close stops the resize watcher and closes the session channel.
func (t *SessionTTY) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		err = t.session.Close()
	})
	return err
}

// Start, Stop and Drain have nothing to do: the channel is already in raw
// mode on the client side and writes are not buffered here.
func (t *SessionTTY) Start() error { return nil }
func (t *SessionTTY) Stop() error  { return nil }
func (t *SessionTTY) Drain() error { return nil }

// WindowSize reports the most recent client window.
func (t *SessionTTY) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize sets the resize callback; nil clears it. The first call starts
// the watcher, which runs until the window channel closes or Close is called.
func (t *SessionTTY) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()
	t.watch.Do(func() { go t.watchResize() })
}

func (t *SessionTTY) watchResize() {
	for {
		select {
		case <-t.done:
			return
		case win, ok := <-t.winCh:
			if !ok {
				return
			}
			t.mu.Lock()
			t.window = win
			cb := t.cb
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}
}
