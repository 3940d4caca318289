package main

import (
	"context"
	"fmt"

	"github.com/chzyer/readline"

	"github.com/meetwire/meetwire-go/pkg/connect"
	"github.com/meetwire/meetwire-go/pkg/reauth"
	"github.com/meetwire/meetwire-go/pkg/session"
)

// prompt collects credentials on the terminal and retries the attempt
// until it succeeds or fails fatally.
type prompt struct {
	connector *connect.Connector
}

func newPrompt(c *connect.Connector) *prompt {
	return &prompt{connector: c}
}

// RequestCredentials runs the terminal credential loop for room.
func (p *prompt) RequestCredentials(ctx context.Context, room string) (*session.Handle, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "username> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "Room %q requires credentials.\n", room)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rl.SetPrompt("username> ")
		username, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return nil, fmt.Errorf("credential entry aborted: %w", err)
		}

		password, err := rl.ReadPassword("password> ")
		if err != nil {
			return nil, fmt.Errorf("credential entry aborted: %w", err)
		}

		handle, err := p.connector.Attempt(ctx, room, session.Credentials{
			ID:       username,
			Password: string(password),
		})
		if err == nil {
			return handle, nil
		}

		code, classified := session.CodeOf(err)
		if !classified || session.IsFatal(code) {
			return nil, err
		}
		fmt.Fprintf(rl.Stdout(), "Rejected (%s), try again.\n", code)
	}
}

// Compile-time interface satisfaction check.
var _ reauth.CredentialPrompt = (*prompt)(nil)
