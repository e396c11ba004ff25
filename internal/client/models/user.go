// Package models defines the client's data model: the persisted user record,
// its city roster, the sign-in/sign-up forms and the weather payload.
package models

// User is the single account record kept in the vault. Password holds the
// bcrypt hash, never the plaintext; the JSON name is kept as "password" so
// the serialized record matches what earlier versions of the app wrote.
type User struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
	PhoneNumber  string `json:"phoneNumber"`
	Cities       []City `json:"cities"`
}

// Clone returns a deep copy of u, so callers can edit the roster without
// touching the user held by the session.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Cities != nil {
		c.Cities = make([]City, len(u.Cities))
		copy(c.Cities, u.Cities)
	}
	return &c
}
