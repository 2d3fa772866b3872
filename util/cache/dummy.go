package cache

// Dummy caches nothing.
type Dummy struct{}

func (Dummy) Get(string) ([]byte, bool) {
	return nil, false
}

func (Dummy) Set(string, []byte) error {
	return nil
}

func (Dummy) Remove(string) bool {
	return false
}

func (Dummy) Purge() error {
	return nil
}
