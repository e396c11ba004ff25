package models

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/dmitrijs2005/weatherface/internal/common"
)

// MinPasswordLength is the shortest password the forms accept.
const MinPasswordLength = 8

// PhoneRegion is the region phone numbers are validated against.
const PhoneRegion = "CZ"

// Field-level messages reported by the form validators.
const (
	MsgEmailRequired      = "Email is required"
	MsgInvalidEmail       = "Invalid email"
	MsgPasswordRequired   = "Password is required"
	MsgPasswordMinLength  = "Password must be at least 8 characters"
	MsgPasswordsMustMatch = "Passwords must match"
	MsgConfirmRequired    = "Enter password again"
	MsgPhoneRequired      = "Phone number is required"
	MsgInvalidPhone       = "Enter a valid phone number"
	MsgCityRequired       = "City name is required"
	MsgPostCodeRequired   = "Postal code is required"
)

// ValidationError maps form fields to a message. It matches
// common.ErrorValidation under errors.Is.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationError) Is(target error) bool {
	return target == common.ErrorValidation
}

// orNil lets validators build a ValidationError and return a nil error when
// nothing was recorded.
func (v ValidationError) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// SignInForm is what the sign-in prompt collects.
type SignInForm struct {
	Email    string
	Password string
}

func (f SignInForm) Validate() error {
	errs := ValidationError{}
	validateEmail(errs, f.Email)
	validatePassword(errs, f.Password)
	return errs.orNil()
}

// SignUpForm is what the sign-up prompt collects.
type SignUpForm struct {
	Email           string
	Password        string
	ConfirmPassword string
	PhoneNumber     string
	Cities          []City
}

func (f SignUpForm) Validate() error {
	errs := ValidationError{}
	validateEmail(errs, f.Email)
	validatePassword(errs, f.Password)

	switch {
	case f.ConfirmPassword == "":
		errs["confirmPassword"] = MsgConfirmRequired
	case f.ConfirmPassword != f.Password:
		errs["confirmPassword"] = MsgPasswordsMustMatch
	}

	if msg := ValidatePhone(f.PhoneNumber); msg != "" {
		errs["phoneNumber"] = msg
	}

	for i, c := range f.Cities {
		if msg := ValidateCityName(c.Name); msg != "" {
			errs[fmt.Sprintf("cities[%d].name", i)] = msg
		}
		if msg := ValidatePostCode(c.Address.PostCode); msg != "" {
			errs[fmt.Sprintf("cities[%d].address.postCode", i)] = msg
		}
	}
	return errs.orNil()
}

// WeatherSearch is the free-text city lookup form.
type WeatherSearch struct {
	Name string
}

func (f WeatherSearch) Validate() error {
	if msg := ValidateCityName(f.Name); msg != "" {
		return ValidationError{"name": msg}
	}
	return nil
}

// ValidatePhone returns an empty string for a valid number in PhoneRegion,
// otherwise the message to show next to the field.
func ValidatePhone(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return MsgPhoneRequired
	}
	num, err := phonenumbers.Parse(number, PhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return MsgInvalidPhone
	}
	return ""
}

func ValidateCityName(name string) string {
	if strings.TrimSpace(name) == "" {
		return MsgCityRequired
	}
	return ""
}

func ValidatePostCode(postCode int) string {
	if postCode <= 0 {
		return MsgPostCodeRequired
	}
	return ""
}

func validateEmail(errs ValidationError, email string) {
	if strings.TrimSpace(email) == "" {
		errs["email"] = MsgEmailRequired
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		errs["email"] = MsgInvalidEmail
	}
}

func validatePassword(errs ValidationError, password string) {
	switch {
	case password == "":
		errs["password"] = MsgPasswordRequired
	case len([]rune(password)) < MinPasswordLength:
		errs["password"] = MsgPasswordMinLength
	}
}
