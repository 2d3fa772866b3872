package role

import (
	"github.com/pkg/errors"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/token"
	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/logging"
)

var (
	QualifierExistsError   = util.ConflictError.New("account is already qualifier")
	CollectorExistsError   = util.ConflictError.New("account is already collector")
	ContributorExistsError = util.ConflictError.New("account is already contributor")
)

var existsErrors = map[base.Role]*util.NError{
	base.QualifierRole:   QualifierExistsError,
	base.CollectorRole:   CollectorExistsError,
	base.ContributorRole: ContributorExistsError,
}

// TokenLedger issues the membership tokens of roles.
type TokenLedger interface {
	CreateCollection(*storage.Statepool, base.Caller, base.CollectionID, uint32, []byte, base.Tick) error
	Mint(*storage.Statepool, base.Caller, base.CollectionID, base.Address) (token.Token, error)
}

// Registry keeps the members of governance roles.
type Registry struct {
	*logging.Logging
	ledger TokenLedger
}

func NewRegistry(ledger TokenLedger) *Registry {
	return &Registry{
		Logging: logging.NewModuleLogging("role-registry"),
		ledger:  ledger,
	}
}

func (rg *Registry) AddQualifier(sp *storage.Statepool, caller base.Caller, account base.Address) (uint32, error) {
	return rg.Add(sp, caller, base.QualifierRole, account)
}

func (rg *Registry) AddCollector(sp *storage.Statepool, caller base.Caller, account base.Address) (uint32, error) {
	return rg.Add(sp, caller, base.CollectorRole, account)
}

func (rg *Registry) AddContributor(sp *storage.Statepool, caller base.Caller, account base.Address) (uint32, error) {
	return rg.Add(sp, caller, base.ContributorRole, account)
}

// Add admits account to role and returns the new membership count. The
// membership token is minted on a best-effort basis; a failed mint does not
// fail the admission.
func (rg *Registry) Add(
	sp *storage.Statepool,
	caller base.Caller,
	r base.Role,
	account base.Address,
) (uint32, error) {
	if err := caller.EnsurePrivileged(); err != nil {
		return 0, err
	}

	if err := r.IsValid(nil); err != nil {
		return 0, err
	}

	if err := account.IsValid(nil); err != nil {
		return 0, err
	}

	set, err := rg.load(sp, r)
	if err != nil {
		return 0, err
	}

	if set.Has(account) {
		return 0, existsErrors[r].Errorf("account=%s", account)
	}

	count, err := rg.Count(sp, r)
	if err != nil {
		return 0, err
	}

	count, err = util.AddUint32(count, 1)
	if err != nil {
		return 0, err
	}

	_ = set.Insert(account)

	if err := sp.Set(membersKey(r), set); err != nil {
		return 0, err
	}

	sp.SetCounter(membershipCountKey(r), uint64(count))

	rg.bestEffort(r, account, func() error {
		_, err := rg.ledger.Mint(sp, caller, r.Collection(), account)

		return err
	})

	sp.Emit(addedEvent(r, account, count))

	rg.Log().Debug().Stringer("role", r).Stringer("account", account).Uint32("count", count).Msg("member added")

	return count, nil
}

// CollectionSpec describes the membership collection of a role.
type CollectionSpec struct {
	Role        base.Role
	TotalSupply uint32
	Metadata    []byte
}

func DefaultCollectionSpecs() []CollectionSpec {
	return []CollectionSpec{
		{Role: base.QualifierRole, TotalSupply: 200, Metadata: []byte("Qualifiers")},
		{Role: base.CollectorRole, TotalSupply: 100, Metadata: []byte("Collectors")},
		{Role: base.ContributorRole, TotalSupply: 1000, Metadata: []byte("Contributors")},
	}
}

// InitCollections creates the membership collections of roles. Collections
// which already exist are skipped.
func (rg *Registry) InitCollections(
	sp *storage.Statepool,
	caller base.Caller,
	specs []CollectionSpec,
	now base.Tick,
) error {
	if err := caller.EnsurePrivileged(); err != nil {
		return err
	}

	for i := range specs {
		if err := specs[i].Role.IsValid(nil); err != nil {
			return err
		}
	}

	for i := range specs {
		s := specs[i]

		err := rg.ledger.CreateCollection(sp, caller, s.Role.Collection(), s.TotalSupply, s.Metadata, now)
		switch {
		case err == nil:
		case errors.Is(err, token.CollectionExistsError):
			rg.Log().Debug().Stringer("role", s.Role).Msg("collection already exists; skipped")
		default:
			return err
		}
	}

	return nil
}

func (rg *Registry) bestEffort(r base.Role, account base.Address, f func() error) {
	if err := f(); err != nil {
		rg.Log().Debug().Err(err).Stringer("role", r).Stringer("account", account).
			Msg("failed to mint membership token; ignored")
	}
}

func (*Registry) IsMember(rd storage.Reader, r base.Role, account base.Address) (bool, error) {
	set, err := loadSet(rd, r)
	if err != nil {
		return false, err
	}

	return set.Has(account), nil
}

// Members returns the accounts of role in order.
func (*Registry) Members(rd storage.Reader, r base.Role) ([]base.Address, error) {
	set, err := loadSet(rd, r)
	if err != nil {
		return nil, err
	}

	return set.Items(), nil
}

func (*Registry) Count(rd storage.Reader, r base.Role) (uint32, error) {
	i, err := storage.LoadCounter(rd, membershipCountKey(r))
	if err != nil {
		return 0, err
	}

	if i > uint64(^uint32(0)) {
		return 0, storage.CodecError.Errorf("membership count over uint32, %d", i)
	}

	return uint32(i), nil
}

func (*Registry) load(rd storage.Reader, r base.Role) (OrderedSet, error) {
	return loadSet(rd, r)
}

func loadSet(rd storage.Reader, r base.Role) (OrderedSet, error) {
	if err := r.IsValid(nil); err != nil {
		return OrderedSet{}, err
	}

	var set OrderedSet
	if _, err := storage.Load(rd, membersKey(r), &set); err != nil {
		return OrderedSet{}, err
	}

	return set, nil
}

func membersKey(r base.Role) []byte {
	return storage.Key(storage.KeyPrefixMembers, []byte{byte(r)})
}

func membershipCountKey(r base.Role) []byte {
	return storage.Key(storage.KeyPrefixMembershipCount, []byte{byte(r)})
}
