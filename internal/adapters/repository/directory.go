// Package repository holds the in-memory stores: the user/team directory
// and the append-only recognition feed. Stores perform no access
// filtering; policy is layered on by the access package at query time.
package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
	"github.com/Teenu24/employee-recognition-api/pkg/metrics"
)

// Directory is the identity store: users and teams, pure lookup.
// Team membership is derived by scanning users, never stored on teams.
type Directory struct {
	mu    sync.RWMutex
	users map[string]model.User
	teams map[string]model.Team
	// userOrder preserves load order so listings are deterministic.
	userOrder []string
	teamOrder []string
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		users: make(map[string]model.User),
		teams: make(map[string]model.Team),
	}
}

// AddUser inserts or replaces a user.
func (d *Directory) AddUser(u model.User) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.users[u.ID]; !exists {
		d.userOrder = append(d.userOrder, u.ID)
	}
	d.users[u.ID] = u
	metrics.UpdateDirectoryUsers(len(d.users))
}

// AddTeam inserts or replaces a team.
func (d *Directory) AddTeam(t model.Team) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.teams[t.ID]; !exists {
		d.teamOrder = append(d.teamOrder, t.ID)
	}
	d.teams[t.ID] = t
}

// User returns the user with the given id.
func (d *Directory) User(id string) (model.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[id]
	return u, ok
}

// Users returns all users in load order.
func (d *Directory) Users(ctx context.Context) []model.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]model.User, 0, len(d.userOrder))
	for _, id := range d.userOrder {
		out = append(out, d.users[id])
	}
	return out
}

// UsersByTeam returns the users whose team reference matches teamID,
// in load order.
func (d *Directory) UsersByTeam(ctx context.Context, teamID string) []model.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]model.User, 0)
	for _, id := range d.userOrder {
		if u := d.users[id]; u.TeamID == teamID {
			out = append(out, u)
		}
	}
	return out
}

// Team returns the team with the given id.
func (d *Directory) Team(id string) (model.Team, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.teams[id]
	return t, ok
}

// Teams returns all teams in load order.
func (d *Directory) Teams(ctx context.Context) []model.Team {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]model.Team, 0, len(d.teamOrder))
	for _, id := range d.teamOrder {
		out = append(out, d.teams[id])
	}
	return out
}

// TeamIDs returns all team ids sorted, for deterministic iteration.
func (d *Directory) TeamIDs(ctx context.Context) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]string, 0, len(d.teams))
	for id := range d.teams {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// UpdateProfile mutates the name and/or team of an existing user and
// returns the updated record. A nil field leaves the current value; an
// unknown team id is ignored rather than rejected.
func (d *Directory) UpdateProfile(ctx context.Context, id string, name, teamID *string) (model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	if name != nil && *name != "" {
		u.Name = *name
	}
	if teamID != nil {
		if _, exists := d.teams[*teamID]; exists {
			u.TeamID = *teamID
		}
	}
	d.users[id] = u
	return u, nil
}
