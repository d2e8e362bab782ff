package domain

// Actor identifies who performed a mutation. It is passed explicitly on
// every write and stamped into the audit fields.
type Actor struct {
	ID   string `json:"userId"`
	Name string `json:"userName"`
}

// SystemActor is used by tooling that has no user context, such as the CLI
// when no --user flag is given.
var SystemActor = Actor{ID: "system", Name: "System"}

func (a Actor) IsZero() bool {
	return a.ID == "" && a.Name == ""
}
