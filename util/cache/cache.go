package cache

import (
	"net/url"
	"time"

	"github.com/pkg/errors"
)

var DefaultCacheExpire = time.Hour

// Cache keeps raw state records by their storage key.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, b []byte) error
	Remove(key string) bool
	Purge() error
}

// NewCacheFromURI parses cache uri like "gcache:?type=lru&size=1000&expire=1h"
// or "dummy:".
func NewCacheFromURI(uri string) (Cache, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid uri of cache, %q", uri)
	}

	switch u.Scheme {
	case "gcache":
		return NewGCacheWithQuery(u.Query())
	case "dummy", "":
		return Dummy{}, nil
	default:
		return nil, errors.Errorf("not supported uri of cache, %q", uri)
	}
}
