//go:build mongodb
// +build mongodb

package mongodbstorage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
)

func testMongodbURI() string {
	uri := "localhost"
	if s := os.Getenv("BHDAO_TEST_MONGODB_URI"); len(s) > 0 {
		uri = s
	}

	return fmt.Sprintf("mongodb://%s/t_%s", uri, util.UUID().String())
}

type testDatabase struct {
	suite.Suite
	database *Database
}

func (t *testDatabase) SetupTest() {
	st, err := NewDatabaseFromURI(testMongodbURI(), time.Second*3)
	t.NoError(err)

	t.database = st
}

func (t *testDatabase) TearDownTest() {
	_ = t.database.col.Database().Drop(context.Background())
	_ = t.database.Close()
}

func (t *testDatabase) TestWriteAndGet() {
	a := storage.Key(storage.KeyPrefixDocument, util.Uint64ToBytes(1))

	t.NoError(t.database.Write(context.Background(), []storage.Mutation{{Key: a, Value: []byte("a")}}))

	v, found, err := t.database.Get(a)
	t.NoError(err)
	t.True(found)
	t.Equal([]byte("a"), v)

	t.NoError(t.database.Write(context.Background(), []storage.Mutation{{Key: a, Remove: true}}))

	_, found, err = t.database.Get(a)
	t.NoError(err)
	t.False(found)
}

func (t *testDatabase) TestStatepool() {
	sp := storage.NewStatepool(t.database)
	key := storage.Key(storage.KeyPrefixTotalDocuments)
	sp.SetCounter(key, 3)

	t.NoError(sp.Commit(context.Background()))

	i, err := storage.LoadCounter(t.database, key)
	t.NoError(err)
	t.Equal(uint64(3), i)
}

func TestMongodbDatabase(t *testing.T) {
	suite.Run(t, new(testDatabase))
}
