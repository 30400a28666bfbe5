package models

// Address is a billing or shipping address. All fields are optional; the
// gateway defaults missing slots from whichever address the caller supplied.
type Address struct {
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
	Country  string
	Email    string
}
