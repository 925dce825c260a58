/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and the cmd-error notices sent over WebSocket.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
// Messages containing printf verbs are formatted with the details passed to NewError.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrRateLimitExceeded: {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrPageNotFound:      {Code: ErrPageNotFound, Message: "Chat page not found.", Status: http.StatusNotFound},

	// 2xxx: Chat and Command Errors
	ErrMessageContentTooLong: {Code: ErrMessageContentTooLong, Message: "Message is too long."},
	ErrMessageRateLimited:    {Code: ErrMessageRateLimited, Message: "You are sending messages too quickly. Slow down."},
	ErrNameRequired:          {Code: ErrNameRequired, Message: "Need to provide a name for the /name command"},
	ErrNameClaimed:           {Code: ErrNameClaimed, Message: "Someone already claimed %s as a name. Pick another"},
	ErrColourArgCount:        {Code: ErrColourArgCount, Message: "Too many arguments for /colour command. You sent %d"},
	ErrColourFormat:          {Code: ErrColourFormat, Message: "/colour in the form of #RRGGBB. You sent %s"},
	ErrTextColourArgCount:    {Code: ErrTextColourArgCount, Message: "Too many args for /text-colour command. You sent %d"},
	ErrTextColourFormat:      {Code: ErrTextColourFormat, Message: "/text-colour in the form of #RRGGBB. You sent %s"},
	ErrUnknownCommand:        {Code: ErrUnknownCommand, Message: "Unknown command %s"},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
