/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific request, command or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007

	// ErrPageNotFound indicates that the chat page file could not be served.
	ErrPageNotFound = 1008
)

// 2xxx: Chat and Command Errors
const (
	// ErrMessageContentTooLong indicates that the user's message content exceeded the maximum length limit.
	ErrMessageContentTooLong = 2201

	// ErrMessageRateLimited indicates that a connection sent chat messages or commands faster than allowed.
	ErrMessageRateLimited = 2202

	// ErrNameRequired indicates that /name was sent without a name.
	ErrNameRequired = 2301

	// ErrNameClaimed indicates that another online user already holds the requested name.
	ErrNameClaimed = 2302

	// ErrColourArgCount indicates that /colour did not receive exactly one argument.
	ErrColourArgCount = 2303

	// ErrColourFormat indicates that the /colour argument is not #RRGGBB.
	ErrColourFormat = 2304

	// ErrTextColourArgCount indicates that /text-colour did not receive exactly one argument.
	ErrTextColourArgCount = 2305

	// ErrTextColourFormat indicates that the /text-colour argument is not #RRGGBB.
	ErrTextColourFormat = 2306

	// ErrUnknownCommand indicates that the first command token matched no known command.
	ErrUnknownCommand = 2307
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
