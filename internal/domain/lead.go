package domain

// DemoRequest is a lead captured by the site's demo-request form.
// All five fields are required.
type DemoRequest struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Interest string `json:"interest"`
}

// StoredLead is a DemoRequest after persistence. ID, CreatedAt and Status
// are assigned by the persistence backend, never by this service.
type StoredLead struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Interest  string `json:"interest"`
	CreatedAt string `json:"created_at"`
	Status    string `json:"status"`
}
