package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/weatherface/internal/client/models"
	"github.com/dmitrijs2005/weatherface/internal/common"
)

// getSimpleText, getPassword and getCities are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getCities     = GetCities
)

// SignUp prompts for the sign-up form and creates the account on this
// device. Any account already stored here is replaced.
//
// Password buffers are wiped before returning.
func (a *App) SignUp(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	phone, err := getSimpleText(a.reader, "Enter phone number", a.out)
	if err != nil {
		return err
	}

	cities, err := getCities(a.reader, a.out)
	if err != nil {
		return err
	}

	st, err := a.auth.SignUp(ctx, models.SignUpForm{
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
		PhoneNumber:     phone,
		Cities:          cities,
	})
	if err != nil {
		return err
	}

	a.roster.Reset(st.User.Cities)
	fmt.Fprintf(a.out, "Welcome, %s!\n", st.User.Email)
	return nil
}

// SignIn prompts for credentials and checks them against the stored account.
// A mismatch leaves the session signed out.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	st, err := a.auth.SignIn(ctx, models.SignInForm{Email: email, Password: string(password)})
	if err != nil {
		return err
	}

	a.roster.Reset(st.User.Cities)
	fmt.Fprintf(a.out, "Welcome, %s!\n", st.User.Email)
	return nil
}

// SignOut deletes the stored account and clears the session.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		return err
	}
	a.roster.Reset(nil)
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}
