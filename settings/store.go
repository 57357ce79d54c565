package settings

// Store holds the settings table. Implementations must be safe for
// concurrent use and must hand out copies, never references into the
// table.
type Store interface {
	// Read returns the current value for the pair, or false if the pair
	// has never been written and is outside the seeded schema.
	Read(namespace, key string) (Value, bool)

	// ReadAll returns a snapshot of every entry whose namespace is in
	// the filter, grouped by namespace. An empty filter returns
	// everything. Namespaces without matches are omitted.
	ReadAll(namespaces []string) map[string]map[string]Value

	// Write validates the value against the schema and replaces the
	// entry. A rejected write leaves the table unchanged.
	Write(namespace, key string, value Value) error
}
