package base

import (
	"strings"

	"github.com/bhdao/bhdao/util/isvalid"
)

type Role uint8

const (
	QualifierRole Role = iota + 1
	CollectorRole
	ContributorRole
)

// CollectionID identifies a membership token collection.
type CollectionID uint32

// roleCollections maps each governance role to its membership collection.
var roleCollections = map[Role]CollectionID{
	QualifierRole:   1,
	CollectorRole:   2,
	ContributorRole: 3,
}

var Roles = []Role{QualifierRole, CollectorRole, ContributorRole}

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "qualifier":
		return QualifierRole, nil
	case "collector":
		return CollectorRole, nil
	case "contributor":
		return ContributorRole, nil
	default:
		return 0, isvalid.InvalidError.Errorf("unknown role, %q", s)
	}
}

func (r Role) IsValid([]byte) error {
	if _, found := roleCollections[r]; !found {
		return isvalid.InvalidError.Errorf("unknown role, %d", r)
	}

	return nil
}

// Collection returns the membership collection of the role.
func (r Role) Collection() CollectionID {
	return roleCollections[r]
}

func (r Role) String() string {
	switch r {
	case QualifierRole:
		return "qualifier"
	case CollectorRole:
		return "collector"
	case ContributorRole:
		return "contributor"
	default:
		return "<unknown role>"
	}
}
