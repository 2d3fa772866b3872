package cache

import (
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/bluele/gcache"
	"github.com/pkg/errors"

	"github.com/bhdao/bhdao/util"
)

var (
	DefaultGCacheSize = 100 * 100
	DefaultGCacheType = "lru"
)

type GCache struct {
	gc     gcache.Cache
	tp     string
	size   int
	expire time.Duration
}

func NewGCacheWithQuery(config url.Values) (*GCache, error) {
	size := DefaultGCacheSize
	expire := DefaultCacheExpire
	tp := DefaultGCacheType

	if len(config) > 0 {
		if s := config.Get("size"); len(s) > 0 {
			if n, err := strconv.ParseInt(s, 10, 32); err != nil {
				return nil, errors.Wrapf(err, "invalid size, %q of GCache", s)
			} else if n > 0 && n <= math.MaxInt32 {
				size = int(n)
			}
		}

		if s := config.Get("expire"); len(s) > 0 {
			n, err := time.ParseDuration(s)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid expire, %q of GCache", s)
			}
			expire = n
		}

		if s := config.Get("type"); len(s) > 0 {
			tp = s
		}
	}

	return NewGCache(tp, size, expire)
}

func NewGCache(tp string, size int, expire time.Duration) (*GCache, error) {
	builder := gcache.New(size)
	switch tp {
	case "lru":
		builder = builder.LRU()
	case "lfu":
		builder = builder.LFU()
	case "arc":
		builder = builder.ARC()
	default:
		return nil, errors.Errorf("not supported type, %q of GCache", tp)
	}

	return &GCache{
		gc:     builder.Expiration(expire).Build(),
		tp:     tp,
		size:   size,
		expire: expire,
	}, nil
}

func (ca *GCache) Get(key string) ([]byte, bool) {
	i, err := ca.gc.Get(key)
	if err != nil {
		return nil, false
	}

	b, ok := i.([]byte)
	if !ok {
		return nil, false
	}

	return util.CopyBytes(b), true
}

func (ca *GCache) Set(key string, b []byte) error {
	return ca.gc.Set(key, util.CopyBytes(b))
}

func (ca *GCache) Remove(key string) bool {
	return ca.gc.Remove(key)
}

func (ca *GCache) Purge() error {
	ca.gc.Purge()

	return nil
}
