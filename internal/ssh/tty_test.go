package ssh

import (
	"bytes"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession implements the parts of gossh.Session a SessionTTY touches.
type fakeSession struct {
	gossh.Session
	in     *bytes.Buffer
	out    bytes.Buffer
	closed int
}

func (f *fakeSession) Read(b []byte) (int, error)  { return f.in.Read(b) }
func (f *fakeSession) Write(b []byte) (int, error) { return f.out.Write(b) }
func (f *fakeSession) Close() error {
	f.closed++
	return nil
}

func newTTY(winCh chan gossh.Window) (*SessionTTY, *fakeSession) {
	s := &fakeSession{in: bytes.NewBufferString("q")}
	pty := gossh.Pty{Term: "xterm", Window: gossh.Window{Width: 80, Height: 24}}
	return NewSessionTTY(s, pty, winCh), s
}

func TestSessionTTYPassesThroughIO(t *testing.T) {
	tty, s := newTTY(make(chan gossh.Window))
	buf := make([]byte, 4)
	n, err := tty.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "q", string(buf[:n]))

	_, err = tty.Write([]byte("\x1b[2J"))
	require.NoError(t, err)
	assert.Equal(t, "\x1b[2J", s.out.String())
}

func TestSessionTTYInitialWindow(t *testing.T) {
	tty, _ := newTTY(make(chan gossh.Window))
	ws, err := tty.WindowSize()
	require.NoError(t, err)
	assert.Equal(t, tcell.WindowSize{Width: 80, Height: 24}, ws)
}

func TestSessionTTYResize(t *testing.T) {
	winCh := make(chan gossh.Window)
	tty, _ := newTTY(winCh)
	t.Cleanup(func() { _ = tty.Close() })

	resized := make(chan struct{}, 1)
	tty.NotifyResize(func() { resized <- struct{}{} })
	winCh <- gossh.Window{Width: 120, Height: 40}

	select {
	case <-resized:
	case <-time.After(time.Second):
		t.Fatal("resize callback not called")
	}
	ws, err := tty.WindowSize()
	require.NoError(t, err)
	assert.Equal(t, tcell.WindowSize{Width: 120, Height: 40}, ws)
}

func TestSessionTTYCloseIsIdempotent(t *testing.T) {
	tty, s := newTTY(make(chan gossh.Window))
	tty.NotifyResize(nil)
	require.NoError(t, tty.Close())
	require.NoError(t, tty.Close())
	assert.Equal(t, 1, s.closed)
}
