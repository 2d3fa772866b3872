package config

import (
	"github.com/pkg/errors"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/events"
	"github.com/bhdao/bhdao/role"
	"github.com/bhdao/bhdao/util/isvalid"
)

var DefaultAuthority = base.Address("authority")

// Config is the resolved configuration of bhdao.
type Config struct {
	Storage    Storage
	Authority  base.Address
	Governance Governance
	Events     Events
}

func DefaultConfig() Config {
	var st Storage
	_ = st.SetURI(DefaultStorageURI)
	_ = st.SetCache(DefaultStorageCache)

	return Config{
		Storage:   st,
		Authority: DefaultAuthority,
		Governance: Governance{
			Collections: role.DefaultCollectionSpecs(),
		},
		Events: Events{
			Log:         true,
			NATSSubject: events.DefaultNATSSubject,
		},
	}
}

func (c Config) IsValid([]byte) error {
	return isvalid.CheckFunc([]func() error{
		func() error { return c.Storage.IsValid(nil) },
		func() error { return c.Authority.IsValid(nil) },
		func() error { return c.Governance.IsValid(nil) },
		func() error { return c.Events.IsValid(nil) },
	})
}

// Governance holds the parameters applied by init. Nil values keep the
// current on-chain values.
type Governance struct {
	QualificationWindow *uint32
	VerificationWindow  *uint32
	QualificationQuorum *uint64
	VerificationQuorum  *uint64
	Collections         []role.CollectionSpec
}

func (no Governance) IsValid([]byte) error {
	for _, w := range []*uint32{no.QualificationWindow, no.VerificationWindow} {
		if w != nil && *w < 1 {
			return errors.Errorf("zero voting window")
		}
	}

	found := map[base.Role]bool{}
	for i := range no.Collections {
		r := no.Collections[i].Role
		if err := r.IsValid(nil); err != nil {
			return err
		}

		if found[r] {
			return errors.Errorf("duplicated collection of role, %s", r)
		}

		found[r] = true
	}

	return nil
}

// Events selects the sinks of committed events.
type Events struct {
	Log         bool
	File        string
	NATSURL     string
	NATSSubject string
}

func (no Events) IsValid([]byte) error {
	if len(no.NATSURL) > 0 {
		if _, err := ParseURLString(no.NATSURL, false); err != nil {
			return err
		}

		if len(no.NATSSubject) < 1 {
			return errors.Errorf("empty nats subject")
		}
	}

	return nil
}
