package user

// User is the single persisted account record.
type User struct {
	ID           int64
	Email        string
	Password     string // hasher output, never plaintext
	FullName     string
	Role         string
	Organization string
	Status       string
	CreateDT     string
	UpdateDT     string
}

// StatusActive is assigned to freshly registered accounts.
const StatusActive = "active"
