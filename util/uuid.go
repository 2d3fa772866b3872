package util

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid"
	uuid "github.com/satori/go.uuid"
)

var (
	ulidEntropy io.Reader
	ulidLock    sync.Mutex
)

func init() {
	ulidEntropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0) // nolint:gosec
}

func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4(), nil)
}

// ULID returns monotonic ULID; ids made in the same millisecond still sort in
// creation order.
func ULID() ulid.ULID {
	ulidLock.Lock()
	defer ulidLock.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy)
}
