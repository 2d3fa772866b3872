package mongodbstorage

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/isvalid"
	"github.com/bhdao/bhdao/util/logging"
)

var (
	DefaultCollection  = "state"
	DefaultExecTimeout = time.Second * 10
)

type record struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"v"`
}

// Database keeps state records in one mongodb collection. Write runs in a
// transaction, so the server must be a replica set member.
type Database struct {
	*logging.Logging
	client      *mongo.Client
	col         *mongo.Collection
	execTimeout time.Duration
}

func NewDatabaseFromURI(uri string, connectTimeout time.Duration) (*Database, error) {
	cs, err := checkURI(uri)
	if err != nil {
		return nil, err
	}

	clientOpts := options.Client().ApplyURI(uri)
	if err := clientOpts.Validate(); err != nil {
		return nil, isvalid.InvalidError.Wrap(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, storage.WrapStorageError(errors.Wrap(err, "connect timeout"))
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, storage.WrapStorageError(errors.Wrap(err, "ping timeout"))
	}

	return &Database{
		Logging:     logging.NewModuleLogging("mongodb-database"),
		client:      client,
		col:         client.Database(cs.Database).Collection(DefaultCollection),
		execTimeout: DefaultExecTimeout,
	}, nil
}

func (st *Database) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), st.execTimeout)
	defer cancel()

	return storage.WrapStorageError(st.client.Disconnect(ctx))
}

func (st *Database) Get(key []byte) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), st.execTimeout)
	defer cancel()

	var r record
	switch err := st.col.FindOne(ctx, bson.M{"_id": encodeKey(key)}).Decode(&r); {
	case err == nil:
		return r.Value, true, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, false, nil
	default:
		return nil, false, storage.WrapStorageError(err)
	}
}

func (st *Database) Write(ctx context.Context, ms []storage.Mutation) error {
	if len(ms) < 1 {
		return nil
	}

	models := make([]mongo.WriteModel, len(ms))
	for i := range ms {
		k := encodeKey(ms[i].Key)
		if ms[i].Remove {
			models[i] = mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": k})

			continue
		}

		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": k}).
			SetReplacement(record{Key: k, Value: util.CopyBytes(ms[i].Value)}).
			SetUpsert(true)
	}

	ctx, cancel := context.WithTimeout(ctx, st.execTimeout)
	defer cancel()

	session, err := st.client.StartSession()
	if err != nil {
		return storage.WrapStorageError(err)
	}
	defer session.EndSession(ctx)

	if _, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return st.col.BulkWrite(sc, models, options.BulkWrite().SetOrdered(true))
	}); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return storage.TimeoutError.Wrap(err)
		}

		return storage.WrapStorageError(err)
	}

	st.Log().Trace().Int("mutations", len(ms)).Msg("written")

	return nil
}

func encodeKey(key []byte) string {
	return hex.EncodeToString(key)
}

func checkURI(uri string) (connstring.ConnString, error) {
	cs, err := connstring.Parse(uri)
	if err != nil {
		return connstring.ConnString{}, isvalid.InvalidError.Wrap(err)
	}

	if len(cs.Database) < 1 {
		return connstring.ConnString{}, isvalid.InvalidError.Errorf("empty database name in mongodb uri, %q", uri)
	}

	return cs, nil
}
