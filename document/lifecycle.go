package document

import (
	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util/logging"
)

type Membership interface {
	EnsureMember(storage.Reader, base.Caller, base.Role) (base.Address, error)
}

// Lifecycle owns documents and their status.
type Lifecycle struct {
	*logging.Logging
	members Membership
}

func NewLifecycle(members Membership) *Lifecycle {
	return &Lifecycle{
		Logging: logging.NewModuleLogging("document-lifecycle"),
		members: members,
	}
}

// Create submits a new document by contributor.
func (lc *Lifecycle) Create(
	sp *storage.Statepool,
	caller base.Caller,
	title, description, format, contentHash []byte,
) (Document, error) {
	creator, err := lc.members.EnsureMember(sp, caller, base.ContributorRole)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		Creator:     creator,
		Title:       title,
		Description: description,
		Format:      format,
		ContentHash: contentHash,
		Status:      base.DocumentSubmitted,
	}

	if err := doc.IsValid(nil); err != nil {
		return Document{}, err
	}

	id, err := storage.NextCounter(sp, totalDocumentsKey)
	if err != nil {
		return Document{}, err
	}

	doc.ID = id

	if err := sp.Set(documentKey(id), doc); err != nil {
		return Document{}, err
	}

	sp.SetCounter(totalDocumentsKey, id)
	sp.Emit(DocumentCreated{Creator: creator, Document: id})

	lc.Log().Debug().Uint64("document", id).Stringer("creator", creator).Msg("document created")

	return doc, nil
}

// UpdateStatus overwrites the status of document. The voting engine drives
// the lifecycle through it and keeps the transitions in order.
func (lc *Lifecycle) UpdateStatus(sp *storage.Statepool, id uint64, status base.DocumentStatus) (Document, error) {
	if err := status.IsValid(nil); err != nil {
		return Document{}, err
	}

	doc, err := lc.Must(sp, id)
	if err != nil {
		return Document{}, err
	}

	return lc.setStatus(sp, doc, status)
}

// Override is the administrative status update. Unlike UpdateStatus it only
// follows the edges of the lifecycle.
func (lc *Lifecycle) Override(
	sp *storage.Statepool,
	caller base.Caller,
	id uint64,
	status base.DocumentStatus,
) (Document, error) {
	if err := caller.EnsurePrivileged(); err != nil {
		return Document{}, err
	}

	if err := status.IsValid(nil); err != nil {
		return Document{}, err
	}

	doc, err := lc.Must(sp, id)
	if err != nil {
		return Document{}, err
	}

	if !doc.Status.CanMoveTo(status) {
		return Document{}, StatusTransitionError.Errorf("document=%d %s -> %s", id, doc.Status, status)
	}

	return lc.setStatus(sp, doc, status)
}

func (lc *Lifecycle) setStatus(sp *storage.Statepool, doc Document, status base.DocumentStatus) (Document, error) {
	from := doc.Status
	doc.Status = status

	if err := sp.Set(documentKey(doc.ID), doc); err != nil {
		return Document{}, err
	}

	sp.Emit(DocumentStatusUpdated{Document: doc.ID, Status: status.Code()})

	lc.Log().Debug().Uint64("document", doc.ID).Stringer("from", from).Stringer("to", status).
		Msg("document status updated")

	return doc, nil
}

// Must returns the document or DocumentNotFoundError.
func (lc *Lifecycle) Must(rd storage.Reader, id uint64) (Document, error) {
	switch doc, found, err := lc.Document(rd, id); {
	case err != nil:
		return Document{}, err
	case !found:
		return Document{}, DocumentNotFoundError.Errorf("document=%d", id)
	default:
		return doc, nil
	}
}

func (*Lifecycle) Document(rd storage.Reader, id uint64) (Document, bool, error) {
	var doc Document
	found, err := storage.Load(rd, documentKey(id), &doc)

	return doc, found, err
}

func (*Lifecycle) Total(rd storage.Reader) (uint64, error) {
	return storage.LoadCounter(rd, totalDocumentsKey)
}
