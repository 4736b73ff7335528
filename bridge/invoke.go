package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zoobzio/hhsav"
)

// saveArgs is the argument object of both save commands.
type saveArgs struct {
	Data          hhsav.Document `json:"data"`
	SuggestedName string         `json:"suggestedName"`
}

// Names returns the commands Invoke accepts.
func Names() []string {
	return []string{CommandLoad, CommandSaveHHSAV, CommandSaveJSON}
}

// Invoke runs a command by name the way the shell calls it: arguments and
// result are JSON, and every failure is flattened to a message string.
// On success the message is empty. The load command returns the document;
// the save commands return their status string.
func (c *Commands) Invoke(ctx context.Context, command string, args json.RawMessage) (json.RawMessage, string) {
	result, err := c.invoke(ctx, command, args)
	if err != nil {
		return nil, hhsav.Message(err)
	}
	return result, ""
}

func (c *Commands) invoke(ctx context.Context, command string, args json.RawMessage) (json.RawMessage, error) {
	switch command {
	case CommandLoad:
		doc, err := c.LoadSave(ctx)
		if err != nil {
			return nil, err
		}
		return doc.MarshalJSON()

	case CommandSaveHHSAV, CommandSaveJSON:
		var in saveArgs
		if len(args) > 0 {
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, hhsav.NewError(hhsav.ErrParse, command, err)
			}
		}

		save := c.SaveHHSAV
		if command == CommandSaveJSON {
			save = c.SaveJSON
		}
		status, err := save(ctx, in.Data, in.SuggestedName)
		if err != nil {
			return nil, err
		}
		return json.Marshal(status)

	default:
		return nil, hhsav.NewError(hhsav.ErrUnknownCommand, "invoke", fmt.Errorf("%q", command))
	}
}
