// Package teams provides lookup over the team reference table.
package teams

import (
	"errors"
	"fmt"

	"github.com/okian/playcall/internal/domain/model"
)

// Sentinel kinds for team lookups.
var (
	ErrNotFound    = errors.New("team not found")
	ErrDuplicateID = errors.New("duplicate team id")
)

// Directory is an immutable index of teams keyed by identifier.
type Directory struct {
	teams  []model.Team
	byID   map[int]int
	byName map[string]int
}

// NewDirectory indexes teams, keeping input order for All.
func NewDirectory(teams []model.Team) (*Directory, error) {
	d := &Directory{
		teams:  make([]model.Team, len(teams)),
		byID:   make(map[int]int, len(teams)),
		byName: make(map[string]int, len(teams)),
	}
	copy(d.teams, teams)
	for i, t := range d.teams {
		if _, dup := d.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, t.ID)
		}
		d.byID[t.ID] = i
		if _, ok := d.byName[t.DisplayName]; !ok {
			d.byName[t.DisplayName] = i
		}
	}
	return d, nil
}

// All returns a copy of the teams in load order.
func (d *Directory) All() []model.Team {
	out := make([]model.Team, len(d.teams))
	copy(out, d.teams)
	return out
}

// Len returns the number of teams.
func (d *Directory) Len() int { return len(d.teams) }

// Lookup returns the team with id.
func (d *Directory) Lookup(id int) (model.Team, error) {
	i, ok := d.byID[id]
	if !ok {
		return model.Team{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return d.teams[i], nil
}

// ByDisplayName returns the first team whose display name matches exactly.
func (d *Directory) ByDisplayName(name string) (model.Team, error) {
	i, ok := d.byName[name]
	if !ok {
		return model.Team{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return d.teams[i], nil
}

// IDs returns every team identifier in load order.
func (d *Directory) IDs() []int {
	out := make([]int, len(d.teams))
	for i, t := range d.teams {
		out[i] = t.ID
	}
	return out
}
