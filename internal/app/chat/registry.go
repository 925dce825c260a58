package chat

import (
	"errors"
	"fmt"

	"github.com/jackadrianglass/chit-chat-app/internal/app/user"
	"github.com/jackadrianglass/chit-chat-app/internal/pkg/randx"
)

// maxIDAttempts bounds the random draws before NewIdentity falls back to a scan.
const maxIDAttempts = 64

var (
	// ErrUserExists is returned when registering an id that is already registered.
	ErrUserExists = errors.New("user id already registered")

	// ErrUnknownUser is returned when updating an id that was never registered.
	ErrUnknownUser = errors.New("unknown user id")

	// ErrIdentitySpaceExhausted is returned when every id in [1, user.MaxID) is taken.
	ErrIdentitySpaceExhausted = errors.New("no free user id left")
)

// Registry tracks every identity created during the process lifetime and its presence.
// Users are never removed, only marked offline.
// It is owned by the room loop and not safe for concurrent use.
type Registry struct {
	users map[int]*user.User
	// order keeps registration order for stable online listings.
	order []int

	idSource func() (int, error)
}

// NewRegistry creates an empty registry drawing ids from crypto/rand.
func NewRegistry() *Registry {
	return &Registry{
		users: make(map[int]*user.User),
		idSource: func() (int, error) {
			return randx.IntRange(user.ServerID+1, user.MaxID)
		},
	}
}

// FindByID returns a copy of the user with the given id.
func (r *Registry) FindByID(id int) (user.User, bool) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, false
	}
	return *u, true
}

// FindOnlineByName returns an online user named name whose id is not excludingID.
func (r *Registry) FindOnlineByName(name string, excludingID int) (user.User, bool) {
	for _, id := range r.order {
		u := r.users[id]
		if u.ID != excludingID && u.IsOnline() && u.Name == name {
			return *u, true
		}
	}
	return user.User{}, false
}

// Register inserts a new user. The id must not already exist.
func (r *Registry) Register(u user.User) error {
	if _, ok := r.users[u.ID]; ok {
		return fmt.Errorf("register %d: %w", u.ID, ErrUserExists)
	}

	stored := u
	r.users[u.ID] = &stored
	r.order = append(r.order, u.ID)
	return nil
}

// Update overwrites the display attributes and presence of a registered user.
func (r *Registry) Update(u user.User) error {
	stored, ok := r.users[u.ID]
	if !ok {
		return fmt.Errorf("update %d: %w", u.ID, ErrUnknownUser)
	}

	*stored = u
	return nil
}

// MarkOnline sets the user online. Unknown ids and already online users are left unchanged.
func (r *Registry) MarkOnline(id int) (user.User, bool) {
	return r.setStatus(id, user.Online)
}

// MarkOffline sets the user offline. Unknown ids and already offline users are left unchanged.
func (r *Registry) MarkOffline(id int) (user.User, bool) {
	return r.setStatus(id, user.Offline)
}

func (r *Registry) setStatus(id int, status user.Status) (user.User, bool) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, false
	}

	u.Status = status
	return *u, true
}

// OnlineUsers returns the online users in registration order.
func (r *Registry) OnlineUsers() []user.User {
	out := make([]user.User, 0, len(r.users))
	for _, id := range r.order {
		if u := r.users[id]; u.IsOnline() {
			out = append(out, *u)
		}
	}
	return out
}

// Len returns the number of registered users, online or not.
func (r *Registry) Len() int {
	return len(r.users)
}

// NewIdentity creates a fresh, unregistered user whose id is unused and whose
// default name is not held by an online user.
func (r *Registry) NewIdentity() (user.User, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := r.idSource()
		if err != nil {
			return user.User{}, fmt.Errorf("draw user id: %w", err)
		}

		if r.available(id) {
			return user.New(id), nil
		}
	}

	for id := user.ServerID + 1; id < user.MaxID; id++ {
		if r.available(id) {
			return user.New(id), nil
		}
	}

	return user.User{}, ErrIdentitySpaceExhausted
}

func (r *Registry) available(id int) bool {
	if id == user.ServerID || id < 0 || id >= user.MaxID {
		return false
	}
	if _, taken := r.users[id]; taken {
		return false
	}
	_, claimed := r.FindOnlineByName(user.DefaultName(id), id)
	return !claimed
}

// FreeName returns name if no other online user holds it, otherwise the first
// free "name (n)" with n starting at 2.
func (r *Registry) FreeName(name string, excludingID int) string {
	if _, taken := r.FindOnlineByName(name, excludingID); !taken {
		return name
	}

	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if _, taken := r.FindOnlineByName(candidate, excludingID); !taken {
			return candidate
		}
	}
}
