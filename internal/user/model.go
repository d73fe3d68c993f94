package user

// User is a single account record.
type User struct {
	ID          int64  `json:"id"`          // assigned by storage on insert, immutable afterwards
	Login       string `json:"login"`       // unique handle chosen by the client
	FirstName   string `json:"firstName"`   // required
	LastName    string `json:"lastName"`    // required, may be empty
	DateOfBirth *Date  `json:"dateOfBirth"` // optional
	IsActive    bool   `json:"isActive"`
}
