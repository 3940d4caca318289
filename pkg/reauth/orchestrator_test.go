package reauth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetwire/meetwire-go/pkg/appstate"
	"github.com/meetwire/meetwire-go/pkg/session"
)

type fakePrompt struct {
	handle *session.Handle
	err    error
	rooms  []string
}

func (f *fakePrompt) RequestCredentials(ctx context.Context, room string) (*session.Handle, error) {
	f.rooms = append(f.rooms, room)
	return f.handle, f.err
}

func TestRequestAuthExternalHandoff(t *testing.T) {
	var redirected []string
	o := &Orchestrator{
		TokenAuthEnabled: true,
		Redirect:         func(room string) { redirected = append(redirected, room) },
		Prompt:           &fakePrompt{handle: &session.Handle{SessionID: "never"}},
	}

	handle, err := o.RequestAuth(context.Background(), "standup")

	// Terminal handoff: no handle, no prompt, and the redirect fired.
	assert.Nil(t, handle)
	assert.ErrorIs(t, err, ErrExternalHandoff)
	assert.Equal(t, []string{"standup"}, redirected)
}

func TestRequestAuthPromptSuccess(t *testing.T) {
	prompt := &fakePrompt{handle: &session.Handle{SessionID: "sess-2"}}
	rec := appstate.NewRecorder(nil)
	o := &Orchestrator{Prompt: prompt, Bus: rec}

	handle, err := o.RequestAuth(context.Background(), "standup")

	require.NoError(t, err)
	assert.Equal(t, "sess-2", handle.SessionID)
	assert.Equal(t, []string{"standup"}, prompt.rooms)
	assert.Equal(t, []string{"auth/open-credential-dialog"}, rec.Names())
}

func TestRequestAuthPromptFailurePropagates(t *testing.T) {
	want := errors.New("user dismissed dialog")
	o := &Orchestrator{Prompt: &fakePrompt{err: want}}

	_, err := o.RequestAuth(context.Background(), "standup")
	assert.ErrorIs(t, err, want)
}

func TestRequestAuthNoPrompt(t *testing.T) {
	o := &Orchestrator{}

	_, err := o.RequestAuth(context.Background(), "standup")
	assert.ErrorIs(t, err, ErrNoCredentialPrompt)
}
