package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/weatherface/internal/client/models"
	"github.com/dmitrijs2005/weatherface/internal/client/roster"
	"github.com/dmitrijs2005/weatherface/internal/client/services"
)

// Cities prints the roster; the selected city is marked with '*'.
func (a *App) Cities(ctx context.Context) error {
	cities := a.roster.Cities()
	if len(cities) == 0 {
		fmt.Fprintln(a.out, "No cities yet. Use addcity to add one.")
		return nil
	}

	sel, hasSel := a.roster.Selected()
	selMarked := false
	for _, c := range cities {
		mark := " "
		if hasSel && !selMarked && c == sel {
			mark = "*"
			selMarked = true
		}
		fmt.Fprintf(a.out, "%s %-20s %d\n", mark, c.Name, c.Address.PostCode)
	}
	return nil
}

// AddCity prompts for a city and appends it to the roster.
func (a *App) AddCity(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "City name", a.out)
	if err != nil {
		return err
	}
	postCode, err := a.promptPostCode("Post code")
	if err != nil {
		return err
	}

	snap := a.roster.Snapshot()
	if err := a.roster.Add(name, postCode); err != nil {
		return err
	}
	if err := a.saveRoster(ctx, snap); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (%d).\n", name, postCode)
	return nil
}

// EditCity changes the name and/or post code of the city identified by
// args[0] (or a prompted post code). Empty answers keep the current value.
func (a *App) EditCity(ctx context.Context, args []string) error {
	postCode, err := a.postCodeArg(args, "Post code of the city to edit")
	if err != nil {
		return err
	}

	cur, ok := a.find(postCode)
	if !ok {
		return roster.ErrCityNotFound
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("New name [%s]", cur.Name), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = cur.Name
	}

	code, err := getSimpleText(a.reader, fmt.Sprintf("New post code [%d]", cur.Address.PostCode), a.out)
	if err != nil {
		return err
	}
	newPostCode := cur.Address.PostCode
	if code != "" {
		if newPostCode, err = ParsePostCode(code); err != nil {
			return models.ValidationError{"postCode": models.MsgPostCodeRequired}
		}
	}

	snap := a.roster.Snapshot()
	if err := a.roster.Edit(postCode, name, newPostCode); err != nil {
		return err
	}
	if err := a.saveRoster(ctx, snap); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s (%d).\n", name, newPostCode)
	return nil
}

// RemoveCity removes the city identified by args[0] or a prompted post code.
// The last city cannot be removed.
func (a *App) RemoveCity(ctx context.Context, args []string) error {
	postCode, err := a.postCodeArg(args, "Post code of the city to remove")
	if err != nil {
		return err
	}

	snap := a.roster.Snapshot()
	if err := a.roster.Remove(postCode); err != nil {
		return err
	}
	if err := a.saveRoster(ctx, snap); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed %d.\n", postCode)
	return nil
}

// Select marks the roster city with post code args[0] as selected.
func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: select <postCode>")
		return nil
	}
	postCode, err := ParsePostCode(args[0])
	if err != nil {
		return models.ValidationError{"postCode": models.MsgPostCodeRequired}
	}
	c, err := a.roster.Select(postCode)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Selected %s (%d).\n", c.Name, c.Address.PostCode)
	return nil
}

// Profile prints the signed-in user and offers to change the phone number.
func (a *App) Profile(ctx context.Context) error {
	st := a.auth.State()
	u := st.User
	fmt.Fprintf(a.out, "Email:  %s\nPhone:  %s\nCities: %d\n", u.Email, u.PhoneNumber, len(u.Cities))

	phone, err := getSimpleText(a.reader, "New phone number (empty to keep)", a.out)
	if err != nil || phone == "" || phone == u.PhoneNumber {
		return nil
	}
	if msg := models.ValidatePhone(phone); msg != "" {
		return models.ValidationError{"phoneNumber": msg}
	}

	u.PhoneNumber = phone
	if _, err := a.auth.UpdateProfile(ctx, u); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

// saveRoster persists the editor's roster. On failure the editor, selection
// included, is restored to prev.
func (a *App) saveRoster(ctx context.Context, prev roster.Snapshot) error {
	st := a.auth.State()
	if !st.IsAuthenticated || st.User == nil {
		a.roster.Restore(prev)
		return services.ErrNotAuthenticated
	}

	u := st.User
	u.Cities = a.roster.Cities()
	if _, err := a.auth.UpdateProfile(ctx, u); err != nil {
		a.roster.Restore(prev)
		return err
	}
	return nil
}

func (a *App) find(postCode int) (models.City, bool) {
	for _, c := range a.roster.Cities() {
		if c.Address.PostCode == postCode {
			return c, true
		}
	}
	return models.City{}, false
}

func (a *App) postCodeArg(args []string, prompt string) (int, error) {
	if len(args) > 0 {
		n, err := ParsePostCode(args[0])
		if err != nil {
			return 0, models.ValidationError{"postCode": models.MsgPostCodeRequired}
		}
		return n, nil
	}
	return a.promptPostCode(prompt)
}

func (a *App) promptPostCode(prompt string) (int, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0, err
	}
	n, err := ParsePostCode(s)
	if err != nil {
		return 0, models.ValidationError{"postCode": models.MsgPostCodeRequired}
	}
	return n, nil
}
