package leaderboard

// Store is the persistence collaborator for boards. Keys are fixed
// per-variant identifiers. The engine assumes exclusive, non-concurrent
// access: a single active session writes to a store instance.
//
// Load never surfaces corruption upward: a malformed payload degrades to an
// empty collection and the stored value is cleared.
type Store interface {
	Load(key string) ([]Entry, error)
	Save(key string, entries []Entry) error
	Clear(key string) error
}
