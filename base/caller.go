package base

import (
	"github.com/bhdao/bhdao/util"
)

var (
	NotPrivilegedError = util.UnauthorizedError.New("caller is not privileged")
	NotSignedError     = util.UnauthorizedError.New("caller is not signed account")
)

// Caller is the identity the host resolved for a call: either a signed
// account or the privileged chain authority.
type Caller struct {
	address    Address
	privileged bool
}

func NewSignedCaller(a Address) Caller {
	return Caller{address: a}
}

func NewPrivilegedCaller() Caller {
	return Caller{privileged: true}
}

func (c Caller) IsPrivileged() bool {
	return c.privileged
}

func (c Caller) Address() Address {
	return c.address
}

func (c Caller) String() string {
	if c.privileged {
		return "<privileged>"
	}

	return c.address.String()
}

func (c Caller) EnsurePrivileged() error {
	if !c.privileged {
		return NotPrivilegedError.Errorf("caller=%s", c)
	}

	return nil
}

// EnsureSigned returns the account of signed caller.
func (c Caller) EnsureSigned() (Address, error) {
	if c.privileged {
		return EmptyAddress, NotSignedError.Errorf("privileged caller has no account")
	}

	if err := c.address.IsValid(nil); err != nil {
		return EmptyAddress, NotSignedError.Wrap(err)
	}

	return c.address, nil
}
