package notifications

import (
	"strings"
	"sync"
)

// User is a known canvas participant.
type User struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Initials string `json:"initials" yaml:"initials"`
}

// FirstName returns the first word of the display name.
func (u User) FirstName() string {
	if fields := strings.Fields(u.Name); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// UserDirectory resolves mention tokens to users.
type UserDirectory interface {
	Resolve(token string) (User, bool)
	Get(id string) (User, bool)
}

// StaticDirectory is an in-memory user list, replaced when a canvas loads.
type StaticDirectory struct {
	mu    sync.RWMutex
	users []User
}

func NewStaticDirectory(users []User) *StaticDirectory {
	return &StaticDirectory{users: append([]User(nil), users...)}
}

// Resolve matches a first name (case-insensitive) or an exact id.
func (d *StaticDirectory) Resolve(token string) (User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	lower := strings.ToLower(token)
	for _, u := range d.users {
		if strings.ToLower(u.FirstName()) == lower || u.ID == lower {
			return u, true
		}
	}
	return User{}, false
}

func (d *StaticDirectory) Get(id string) (User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (d *StaticDirectory) All() []User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]User(nil), d.users...)
}

// Replace swaps the user list.
func (d *StaticDirectory) Replace(users []User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = append([]User(nil), users...)
}
