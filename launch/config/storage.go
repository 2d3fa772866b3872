package config

import (
	"fmt"
	"net/url"

	"github.com/pkg/errors"

	"github.com/bhdao/bhdao/util/cache"
)

var (
	DefaultStorageURI   = "leveldb:./bhdao-data"
	DefaultStorageCache = fmt.Sprintf(
		"gcache:?type=%s&size=%d&expire=%s",
		cache.DefaultGCacheType,
		cache.DefaultGCacheSize,
		cache.DefaultCacheExpire.String(),
	)
)

// Storage locates the governance state. Supported uri schemes are
// "leveldb:<path>", "mongodb://host/database" and "memory:".
type Storage struct {
	uri   *url.URL
	cache *url.URL
}

func (no Storage) URI() *url.URL {
	return no.uri
}

func (no *Storage) SetURI(s string) error {
	u, err := ParseURLString(s, false)
	if err != nil {
		return err
	}

	switch u.Scheme {
	case "leveldb", "mongodb", "mongodb+srv", "memory":
	default:
		return errors.Errorf("not supported storage, %q", s)
	}

	no.uri = u

	return nil
}

func (no Storage) Cache() *url.URL {
	return no.cache
}

func (no *Storage) SetCache(s string) error {
	u, err := ParseURLString(s, true)
	if err != nil {
		return err
	}

	if u != nil {
		if _, err := cache.NewCacheFromURI(u.String()); err != nil {
			return err
		}
	}

	no.cache = u

	return nil
}

func (no Storage) IsValid([]byte) error {
	if no.uri == nil {
		return errors.Errorf("empty storage uri")
	}

	return nil
}

// LevelDBPath returns the path of "leveldb:" uri.
func LevelDBPath(u *url.URL) string {
	if len(u.Opaque) > 0 {
		return u.Opaque
	}

	return u.Host + u.Path
}
