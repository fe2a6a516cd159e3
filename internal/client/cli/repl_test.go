package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }
func (s *stubExec) Register(context.Context) error {
	s.calls = append(s.calls, "register")
	return nil
}
func (s *stubExec) Login(context.Context) error {
	s.calls = append(s.calls, "login")
	s.loggedIn = true
	return nil
}
func (s *stubExec) Me(context.Context) error {
	s.calls = append(s.calls, "me")
	return nil
}
func (s *stubExec) Ping(context.Context) error {
	s.calls = append(s.calls, "ping")
	return nil
}
func (s *stubExec) Logout(context.Context) error {
	s.calls = append(s.calls, "logout")
	s.loggedIn = false
	return nil
}

func TestRunREPL_Dispatch(t *testing.T) {
	s := &stubExec{}
	var out bytes.Buffer

	runREPL(context.Background(), s, func() string { return "st" },
		rdr("help\n\nregister\nlogin\nhelp\nme\nping\nbogus\nlogout\nexit\nme\n"), &out)

	assert.Equal(t, []string{"register", "login", "me", "ping", "logout"}, s.calls)
	assert.Contains(t, out.String(), "Available commands: register, login, ping, exit")
	assert.Contains(t, out.String(), "Available commands: me, ping, logout, exit")
	assert.Contains(t, out.String(), "Unknown command: bogus")
	assert.Contains(t, out.String(), "nutri (st)> ")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	s := &stubExec{}
	var out bytes.Buffer

	runREPL(context.Background(), s, func() string { return "" }, rdr("ping"), &out)
	assert.Equal(t, []string{"ping"}, s.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	s := &stubExec{}
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runREPL(ctx, s, func() string { return "" }, rdr("ping\n"), &out)
	assert.Empty(t, s.calls)
}
