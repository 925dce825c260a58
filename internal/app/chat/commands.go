package chat

import (
	"strings"

	"github.com/jackadrianglass/chit-chat-app/internal/app/user"
	"github.com/jackadrianglass/chit-chat-app/internal/pkg/errs"
	"github.com/jackadrianglass/chit-chat-app/internal/pkg/logx"
)

// CommandList is the text broadcast in reply to /list.
const CommandList = `"/list" "/name <new name>" "/colour #RRGGBB" "/text-colour #RRGGBB"`

type commandFunc func(r *Room, client *Client, issuer user.User, args []string)

var commands = map[string]commandFunc{
	"/list":        (*Room).listCommand,
	"/name":        (*Room).nameCommand,
	"/colour":      (*Room).colourCommand,
	"/text-colour": (*Room).textColourCommand,
}

// command interprets a slash-command from client. The issuing user is looked
// up by id; commands from unknown ids are logged and dropped.
func (r *Room) command(client *Client, cmd Command) {
	issuer, ok := r.state.Registry.FindByID(cmd.User.ID)
	if !ok {
		client.logger.Warn().
			Int(logx.FieldUserID, cmd.User.ID).
			Str("name", cmd.User.Name).
			Msg("Unknown user sent command. Dropped.")
		return
	}

	tokens := strings.Fields(cmd.Content)
	name := ""
	var args []string
	if len(tokens) > 0 {
		name, args = tokens[0], tokens[1:]
	}

	handler, ok := commands[name]
	if !ok {
		r.emitTo(client, EventCmdError, errs.Text(errs.ErrUnknownCommand, name))
		return
	}

	client.logger.Debug().
		Int(logx.FieldUserID, issuer.ID).
		Str("command", name).
		Int("args", len(args)).
		Msg("Command received.")

	handler(r, client, issuer, args)
}

// serverNotice broadcasts an Info message authored by the server pseudo-user.
func (r *Room) serverNotice(client *Client, content string) {
	r.onMessage(client, Message{
		User:    user.Server(),
		Type:    TypeInfo,
		Content: content,
	}, true)
}

func (r *Room) listCommand(client *Client, _ user.User, _ []string) {
	r.serverNotice(client, CommandList)
}

func (r *Room) nameCommand(client *Client, issuer user.User, args []string) {
	if len(args) == 0 {
		r.emitTo(client, EventCmdError, errs.Text(errs.ErrNameRequired))
		return
	}

	newName := strings.Join(args, " ")

	if _, taken := r.state.Registry.FindOnlineByName(newName, issuer.ID); taken {
		// collisions are announced to the whole room
		r.emitAll(EventCmdError, errs.Text(errs.ErrNameClaimed, newName))
		return
	}

	oldName := issuer.Name
	issuer.Name = newName
	if !r.update(client, issuer) {
		return
	}

	r.serverNotice(client, oldName+" changed their name to "+newName)
	r.emitAll(EventNameChange, issuer)
}

func (r *Room) colourCommand(client *Client, issuer user.User, args []string) {
	if len(args) != 1 {
		r.emitTo(client, EventCmdError, errs.Text(errs.ErrColourArgCount, len(args)))
		return
	}
	if !user.IsValidColour(args[0]) {
		r.emitTo(client, EventCmdError, errs.Text(errs.ErrColourFormat, args[0]))
		return
	}

	issuer.BgColour = args[0]
	if !r.update(client, issuer) {
		return
	}

	r.emitAll(EventColourChange, issuer)
	r.serverNotice(client, issuer.Name+" changed their message colour")
}

func (r *Room) textColourCommand(client *Client, issuer user.User, args []string) {
	if len(args) != 1 {
		r.emitTo(client, EventCmdError, errs.Text(errs.ErrTextColourArgCount, len(args)))
		return
	}
	if !user.IsValidColour(args[0]) {
		r.emitTo(client, EventCmdError, errs.Text(errs.ErrTextColourFormat, args[0]))
		return
	}

	issuer.TextColour = args[0]
	if !r.update(client, issuer) {
		return
	}

	r.emitAll(EventTextColourChange, issuer)
	r.serverNotice(client, issuer.Name+" changed their font colour")
}

func (r *Room) update(client *Client, u user.User) bool {
	if err := r.state.Registry.Update(u); err != nil {
		client.logger.Error().Err(err).Int(logx.FieldUserID, u.ID).Msg("Failed to apply command.")
		return false
	}
	return true
}
