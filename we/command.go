package we

import (
	"bytes"
	"context"

	"github.com/goccy/go-json"
)

type CommandName string

func (name CommandName) String() string {
	return string(name)
}

type Command any

type RemoteCommand struct {
	CommandName CommandName     `json:"command"`
	Arguments   json.RawMessage `json:"arguments,omitempty"`
}

func CommandNameOf(command Command) CommandName {
	var name CommandName
	switch cmd := command.(type) {
	case RemoteCommand:
		name = cmd.CommandName
	case *RemoteCommand:
		name = cmd.CommandName
	default:
		name = CommandName(NameOf(command))
	}

	return name
}

// Reply is the single text item produced by a command, with the revision of the
// state it reflects when the command touched the store.
type Reply struct {
	Text     string   `json:"text"`
	Revision Revision `json:"revision,omitempty"`
}

func TextReply(text string) Reply {
	return Reply{Text: text}
}

type CommandHandler[T comparable] interface {
	HandleCommand(ctx context.Context, cmd Command, store *Store[T]) (Reply, error)
	HandleRemoteCommand(ctx context.Context, cmd RemoteCommand, store *Store[T]) (Reply, error)
}

type CommandHandlerFunction[T comparable, C any] func(ctx context.Context, cmd C, store *Store[T]) (Reply, error)

func (f CommandHandlerFunction[T, C]) HandleCommand(ctx context.Context, cmd Command, store *Store[T]) (Reply, error) {
	command, ok := cmd.(C)
	if !ok {
		return Reply{}, UnexpectedCommand(cmd)
	}

	return f(ctx, command, store)
}

func (f CommandHandlerFunction[T, C]) HandleRemoteCommand(ctx context.Context, cmd RemoteCommand, store *Store[T]) (Reply, error) {
	var command C

	args := bytes.TrimSpace(cmd.Arguments)
	if len(args) > 0 && !bytes.Equal(args, []byte("null")) {
		decoder := json.NewDecoder(bytes.NewReader(args))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&command); err != nil {
			return Reply{}, InvalidArguments(cmd.CommandName, err)
		}
	}

	return f(ctx, command, store)
}
