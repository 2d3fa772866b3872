package base

import (
	"regexp"
	"strings"

	"github.com/bhdao/bhdao/util/isvalid"
)

var (
	reBlankAddressString = regexp.MustCompile(`[\s][\s]*`)
	reAddressString      = regexp.MustCompile(`^[a-zA-Z0-9]([\w\-]*[a-zA-Z0-9])?$`)
)

var EmptyAddress = Address("")

// Address identifies an account. Addresses are ordered by their string form;
// role membership sets rely on this order.
type Address string

func NewAddress(s string) (Address, error) {
	a := Address(s)

	return a, a.IsValid(nil)
}

func (a Address) String() string {
	return string(a)
}

func (a Address) IsValid([]byte) error {
	if reBlankAddressString.MatchString(string(a)) {
		return isvalid.InvalidError.Errorf("address string, %q has blank", a)
	}

	if s := strings.TrimSpace(string(a)); len(s) < 1 {
		return isvalid.InvalidError.Errorf("empty address")
	}

	if !reAddressString.MatchString(string(a)) {
		return isvalid.InvalidError.Errorf("invalid address string, %q", a)
	}

	return nil
}

func (a Address) Equal(b Address) bool {
	return a == b
}

// Compare returns -1, 0 or 1 like strings.Compare.
func (a Address) Compare(b Address) int {
	return strings.Compare(string(a), string(b))
}

func (a Address) Bytes() []byte {
	return []byte(a)
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a), nil
}

func (a *Address) UnmarshalText(b []byte) error {
	i, err := NewAddress(string(b))
	if err != nil {
		return err
	}

	*a = i

	return nil
}
