package domain

// BootstrapData describes the first administrator created on an empty
// database.
type BootstrapData struct {
	AdminEmail    string
	AdminName     string
	AdminPassword string
}
