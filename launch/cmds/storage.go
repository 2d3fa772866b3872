package cmds

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/bhdao/bhdao/launch/config"
	"github.com/bhdao/bhdao/storage"
	leveldbstorage "github.com/bhdao/bhdao/storage/leveldb"
	mongodbstorage "github.com/bhdao/bhdao/storage/mongodb"
	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/cache"
	"github.com/bhdao/bhdao/util/isvalid"
)

var (
	DefaultMongodbConnectTimeout      = time.Second * 5
	DefaultMongodbConnectRetries uint = 3
)

// OpenDatabase opens the database of the configured storage uri.
func OpenDatabase(conf config.Storage) (storage.Database, error) {
	u := conf.URI()
	if u == nil {
		return nil, errors.Errorf("empty storage uri")
	}

	switch u.Scheme {
	case "memory":
		return leveldbstorage.NewMemDatabase(), nil
	case "leveldb":
		ca, err := openCache(conf)
		if err != nil {
			return nil, err
		}

		return leveldbstorage.NewDatabaseFromPath(config.LevelDBPath(u), ca)
	case "mongodb", "mongodb+srv":
		return openMongodb(u.String())
	default:
		return nil, errors.Errorf("not supported storage, %q", u.String())
	}
}

func openCache(conf config.Storage) (cache.Cache, error) {
	if conf.Cache() == nil {
		return cache.Dummy{}, nil
	}

	return cache.NewCacheFromURI(conf.Cache().String())
}

func openMongodb(uri string) (*mongodbstorage.Database, error) {
	var db *mongodbstorage.Database

	err := util.Retry(context.Background(), DefaultMongodbConnectRetries, time.Second, func(int) error {
		i, err := mongodbstorage.NewDatabaseFromURI(uri, DefaultMongodbConnectTimeout)
		switch {
		case err == nil:
			db = i

			return nil
		case errors.Is(err, isvalid.InvalidError):
			return util.StopRetryingError.Wrap(err)
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}
