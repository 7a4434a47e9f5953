package leaderboard

// MemStore implements Store with an in-memory map. Used by tests and by the
// simulator, where sessions never outlive the process.
type MemStore struct {
	boards map[string][]Entry
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{boards: make(map[string][]Entry)}
}

func (s *MemStore) Load(key string) ([]Entry, error) {
	stored, ok := s.boards[key]
	if !ok {
		return nil, nil
	}
	entries := make([]Entry, len(stored))
	copy(entries, stored)
	for i := range entries {
		if entries[i].Email == "" {
			entries[i].Email = PlaceholderEmail
		}
	}
	return entries, nil
}

func (s *MemStore) Save(key string, entries []Entry) error {
	stored := make([]Entry, len(entries))
	copy(stored, entries)
	s.boards[key] = stored
	return nil
}

func (s *MemStore) Clear(key string) error {
	delete(s.boards, key)
	return nil
}
