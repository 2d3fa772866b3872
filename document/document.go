package document

import (
	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/isvalid"
)

var (
	TitleNotProvidedError       = isvalid.InvalidError.New("document title not provided")
	DescriptionNotProvidedError = isvalid.InvalidError.New("document description not provided")
	FormatNotProvidedError      = isvalid.InvalidError.New("document format not provided")
	ContentHashNotProvidedError = isvalid.InvalidError.New("document content hash not provided")
	DocumentNotFoundError       = util.NotFoundError.New("document does not exist")
	StatusTransitionError       = util.ConflictError.New("document status can not move")
)

type Document struct {
	ID          uint64              `bson:"id" json:"id"`
	Creator     base.Address        `bson:"creator" json:"creator"`
	Title       []byte              `bson:"title" json:"title"`
	Description []byte              `bson:"description" json:"description"`
	Format      []byte              `bson:"format" json:"format"`
	ContentHash []byte              `bson:"content_hash" json:"content_hash"`
	Status      base.DocumentStatus `bson:"status" json:"status"`
}

// IsValid checks the fields in order; each empty field has its own error.
func (doc Document) IsValid([]byte) error {
	switch {
	case len(doc.Title) < 1:
		return TitleNotProvidedError.Caller(3)
	case len(doc.Description) < 1:
		return DescriptionNotProvidedError.Caller(3)
	case len(doc.Format) < 1:
		return FormatNotProvidedError.Caller(3)
	case len(doc.ContentHash) < 1:
		return ContentHashNotProvidedError.Caller(3)
	}

	return doc.Status.IsValid(nil)
}

func documentKey(id uint64) []byte {
	return storage.Key(storage.KeyPrefixDocument, util.Uint64ToBytes(id))
}

var totalDocumentsKey = storage.Key(storage.KeyPrefixTotalDocuments)
