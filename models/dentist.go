package models

// Dentist is a registered practitioner. The name doubles as the login
// identifier and must be unique in the roster. The password is stored and
// compared as plaintext, matching the on-disk roster format.
type Dentist struct {
	Contact
	Password string `json:"-"`
}

func NewDentist(name, address, password string) *Dentist {
	return &Dentist{
		Contact:  Contact{Name: name, Address: address},
		Password: password,
	}
}
