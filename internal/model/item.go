package model

// Settings are the two user preferences persisted between sessions.
// Absent keys fall back to DefaultSettings; a stored empty string stays empty.
type Settings struct {
	Project string `json:"project"`
	User    string `json:"user"`
}

// DefaultSettings returns the preferences used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Project: "Sunshine",
		User:    "nyx.linden",
	}
}

// Form holds the inputs of a ticket query.
type Form struct {
	Project      string
	Status       string
	DaysInStatus string
}
