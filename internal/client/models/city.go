package models

// Address holds the postal part of a city entry.
type Address struct {
	PostCode int `json:"postCode"`
}

// City is one entry of a user's roster. The post code doubles as the entry's
// identity inside the roster.
type City struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

// NewCity is a shorthand for building a City literal.
func NewCity(name string, postCode int) City {
	return City{Name: name, Address: Address{PostCode: postCode}}
}
