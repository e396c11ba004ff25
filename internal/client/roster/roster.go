// Package roster edits a user's list of cities and tracks which one is
// selected. Post codes identify entries; duplicates are tolerated and the
// first match wins.
package roster

import (
	"errors"

	"github.com/dmitrijs2005/weatherface/internal/client/models"
)

var (
	// ErrLastCity is returned when removing the only remaining city.
	ErrLastCity = errors.New("you need at least one city in your list")
	// ErrCityNotFound is returned when no entry has the given post code.
	ErrCityNotFound = errors.New("city not found")
)

// Editor is a working copy of a roster.
type Editor struct {
	cities   []models.City
	selected *int
}

// NewEditor copies cities into a new Editor.
func NewEditor(cities []models.City) *Editor {
	c := make([]models.City, len(cities))
	copy(c, cities)
	return &Editor{cities: c}
}

// Cities returns a copy of the current roster.
func (e *Editor) Cities() []models.City {
	c := make([]models.City, len(e.cities))
	copy(c, e.cities)
	return c
}

func (e *Editor) Len() int { return len(e.cities) }

// Add validates and appends a city.
func (e *Editor) Add(name string, postCode int) error {
	if err := validate(name, postCode); err != nil {
		return err
	}
	e.cities = append(e.cities, models.NewCity(name, postCode))
	return nil
}

// Edit replaces the city identified by postCode. If that city is selected the
// selection follows it to newPostCode.
func (e *Editor) Edit(postCode int, name string, newPostCode int) error {
	i := e.index(postCode)
	if i < 0 {
		return ErrCityNotFound
	}
	if err := validate(name, newPostCode); err != nil {
		return err
	}

	e.cities[i] = models.NewCity(name, newPostCode)
	if e.selected != nil && *e.selected == postCode {
		e.selected = &newPostCode
	}
	return nil
}

// Remove deletes the city identified by postCode. The last city cannot be
// removed. Removing the selected city clears the selection.
func (e *Editor) Remove(postCode int) error {
	i := e.index(postCode)
	if i < 0 {
		return ErrCityNotFound
	}
	if len(e.cities) == 1 {
		return ErrLastCity
	}

	e.cities = append(e.cities[:i], e.cities[i+1:]...)
	if e.selected != nil && *e.selected == postCode && e.index(postCode) < 0 {
		e.selected = nil
	}
	return nil
}

// Select marks the city with postCode as selected.
func (e *Editor) Select(postCode int) (models.City, error) {
	i := e.index(postCode)
	if i < 0 {
		return models.City{}, ErrCityNotFound
	}
	e.selected = &postCode
	return e.cities[i], nil
}

// Selected returns the selected city, if any.
func (e *Editor) Selected() (models.City, bool) {
	if e.selected == nil {
		return models.City{}, false
	}
	i := e.index(*e.selected)
	if i < 0 {
		return models.City{}, false
	}
	return e.cities[i], true
}

// Reset replaces the roster, keeping the selection only if its post code is
// still present.
func (e *Editor) Reset(cities []models.City) {
	e.cities = make([]models.City, len(cities))
	copy(e.cities, cities)
	if e.selected != nil && e.index(*e.selected) < 0 {
		e.selected = nil
	}
}

// Snapshot is a saved roster and selection, restorable with Restore.
type Snapshot struct {
	cities   []models.City
	selected *int
}

// Snapshot captures the current roster and selection.
func (e *Editor) Snapshot() Snapshot {
	s := Snapshot{cities: e.Cities()}
	if e.selected != nil {
		pc := *e.selected
		s.selected = &pc
	}
	return s
}

// Restore puts back a roster and selection captured by Snapshot.
func (e *Editor) Restore(s Snapshot) {
	e.cities = make([]models.City, len(s.cities))
	copy(e.cities, s.cities)
	e.selected = nil
	if s.selected != nil {
		pc := *s.selected
		e.selected = &pc
	}
}

func (e *Editor) index(postCode int) int {
	for i, c := range e.cities {
		if c.Address.PostCode == postCode {
			return i
		}
	}
	return -1
}

func validate(name string, postCode int) error {
	errs := models.ValidationError{}
	if msg := models.ValidateCityName(name); msg != "" {
		errs["name"] = msg
	}
	if msg := models.ValidatePostCode(postCode); msg != "" {
		errs["postCode"] = msg
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
