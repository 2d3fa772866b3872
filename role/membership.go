package role

import (
	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
)

var (
	NotAQualifierError   = util.UnauthorizedError.New("caller is not qualifier")
	NotACollectorError   = util.UnauthorizedError.New("caller is not collector")
	NotAContributorError = util.UnauthorizedError.New("caller is not contributor")
	NotAuthorizedError   = util.UnauthorizedError.New("caller does not hold any of the required roles")
)

var notMemberErrors = map[base.Role]*util.NError{
	base.QualifierRole:   NotAQualifierError,
	base.CollectorRole:   NotACollectorError,
	base.ContributorRole: NotAContributorError,
}

// EnsureMember returns the account of caller when it is a member of r.
func (rg *Registry) EnsureMember(rd storage.Reader, caller base.Caller, r base.Role) (base.Address, error) {
	account, err := caller.EnsureSigned()
	if err != nil {
		return base.EmptyAddress, err
	}

	switch isMember, err := rg.IsMember(rd, r, account); {
	case err != nil:
		return base.EmptyAddress, err
	case !isMember:
		return base.EmptyAddress, notMemberErrors[r].Errorf("account=%s", account)
	default:
		return account, nil
	}
}

// EnsureAnyMember returns the account of caller when it is a member of at
// least one of roles.
func (rg *Registry) EnsureAnyMember(rd storage.Reader, caller base.Caller, roles ...base.Role) (base.Address, error) {
	account, err := caller.EnsureSigned()
	if err != nil {
		return base.EmptyAddress, err
	}

	for i := range roles {
		switch isMember, err := rg.IsMember(rd, roles[i], account); {
		case err != nil:
			return base.EmptyAddress, err
		case isMember:
			return account, nil
		}
	}

	return base.EmptyAddress, NotAuthorizedError.Errorf("account=%s roles=%v", account, roles)
}
