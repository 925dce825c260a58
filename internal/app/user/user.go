/*
Package user contains core data structures and logic related to user identity and presence.

It defines the representation of a chat participant (the User struct) shared between the
session registry, the message history and the clients, together with the colour validation
rule applied to display attributes.
*/
package user

import (
	"fmt"
	"regexp"
)

// Status is the presence state of a registered identity.
type Status int

const (
	// Online marks a user that has joined and not explicitly left.
	Online Status = iota

	// Offline marks a user that has left. Offline users stay registered.
	Offline
)

const (
	// DefaultTextColour is the font colour assigned to every new user.
	DefaultTextColour = "#000000"

	// DefaultBgColour is the message background colour assigned to every new user.
	DefaultBgColour = "#bababa"

	// ServerID is the identifier reserved for the server pseudo-user.
	ServerID = 0

	// MaxID is the exclusive upper bound of generated user identifiers.
	MaxID = 9999
)

var colourRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// User represents a chat participant: identity, presence and display attributes.
// Fields use JSON tags for serialization in WebSocket events.
type User struct {

	// ID is the numeric identity assigned by the server on first join.
	ID int `json:"id"`

	// Name is the display name; unique among online users.
	Name string `json:"name"`

	// Status is the presence state.
	Status Status `json:"status"`

	// TextColour is the #RRGGBB font colour of the user's messages.
	TextColour string `json:"textColour"`

	// BgColour is the #RRGGBB background colour of the user's messages.
	BgColour string `json:"bgColour"`
}

// New returns a fresh online identity for the given id with the default name and colours.
func New(id int) User {
	return User{
		ID:         id,
		Name:       DefaultName(id),
		Status:     Online,
		TextColour: DefaultTextColour,
		BgColour:   DefaultBgColour,
	}
}

// DefaultName returns the name given to a new user with the given id.
func DefaultName(id int) string {
	return fmt.Sprintf("User%d", id)
}

// Server returns the pseudo-user that authors system notices.
func Server() User {
	return User{
		ID:         ServerID,
		Name:       "server",
		Status:     Online,
		TextColour: "#FFFFFF",
		BgColour:   "#030303",
	}
}

// IsOnline reports whether the user is currently online.
func (u User) IsOnline() bool {
	return u.Status == Online
}

// IsValidColour reports whether s is exactly a '#' followed by six hex digits.
func IsValidColour(s string) bool {
	return colourRegex.MatchString(s)
}
