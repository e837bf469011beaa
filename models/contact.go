package models

// Contact is the name/address pair shared by patients and dentists.
type Contact struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}
