package yamlconfig

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/launch/config"
	"github.com/bhdao/bhdao/role"
)

type Storage struct {
	URI   *string `yaml:",omitempty"`
	Cache *string `yaml:",omitempty"`
}

func (no Storage) Set(conf *config.Config) error {
	if no.URI != nil {
		if err := conf.Storage.SetURI(*no.URI); err != nil {
			return err
		}
	}

	if no.Cache != nil {
		if err := conf.Storage.SetCache(*no.Cache); err != nil {
			return err
		}
	}

	return nil
}

type Collection struct {
	Role        string
	TotalSupply *uint32 `yaml:"total-supply,omitempty"`
	Metadata    *string `yaml:",omitempty"`
}

type Governance struct {
	QualificationWindow *uint32      `yaml:"qualification-window,omitempty"`
	VerificationWindow  *uint32      `yaml:"verification-window,omitempty"`
	QualificationQuorum *uint64      `yaml:"qualification-quorum,omitempty"`
	VerificationQuorum  *uint64      `yaml:"verification-quorum,omitempty"`
	Collections         []Collection `yaml:",omitempty"`
}

func (no Governance) Set(conf *config.Config) error {
	g := &conf.Governance

	if no.QualificationWindow != nil {
		g.QualificationWindow = no.QualificationWindow
	}

	if no.VerificationWindow != nil {
		g.VerificationWindow = no.VerificationWindow
	}

	if no.QualificationQuorum != nil {
		g.QualificationQuorum = no.QualificationQuorum
	}

	if no.VerificationQuorum != nil {
		g.VerificationQuorum = no.VerificationQuorum
	}

	for i := range no.Collections {
		c := no.Collections[i]

		r, err := base.ParseRole(c.Role)
		if err != nil {
			return err
		}

		spec := role.CollectionSpec{Role: r}

		j := -1
		for k := range g.Collections {
			if g.Collections[k].Role == r {
				j = k
				spec = g.Collections[k]

				break
			}
		}

		if c.TotalSupply != nil {
			spec.TotalSupply = *c.TotalSupply
		}

		if c.Metadata != nil {
			spec.Metadata = []byte(*c.Metadata)
		}

		if j < 0 {
			g.Collections = append(g.Collections, spec)
		} else {
			g.Collections[j] = spec
		}
	}

	return nil
}

type NATS struct {
	URL     *string `yaml:",omitempty"`
	Subject *string `yaml:",omitempty"`
}

type Events struct {
	Log  *bool   `yaml:",omitempty"`
	File *string `yaml:",omitempty"`
	NATS *NATS   `yaml:",omitempty"`
}

func (no Events) Set(conf *config.Config) error {
	if no.Log != nil {
		conf.Events.Log = *no.Log
	}

	if no.File != nil {
		conf.Events.File = *no.File
	}

	if no.NATS != nil {
		if no.NATS.URL != nil {
			conf.Events.NATSURL = *no.NATS.URL
		}

		if no.NATS.Subject != nil {
			conf.Events.NATSSubject = *no.NATS.Subject
		}
	}

	return nil
}

type Config struct {
	Storage    *Storage    `yaml:",omitempty"`
	Authority  *string     `yaml:",omitempty"`
	Governance *Governance `yaml:",omitempty"`
	Events     *Events     `yaml:",omitempty"`
}

// Set applies the given values over conf.
func (no Config) Set(conf *config.Config) error {
	if no.Storage != nil {
		if err := no.Storage.Set(conf); err != nil {
			return errors.Wrap(err, "failed to set storage")
		}
	}

	if no.Authority != nil {
		a, err := base.NewAddress(*no.Authority)
		if err != nil {
			return errors.Wrap(err, "invalid authority")
		}

		conf.Authority = a
	}

	if no.Governance != nil {
		if err := no.Governance.Set(conf); err != nil {
			return errors.Wrap(err, "failed to set governance")
		}
	}

	if no.Events != nil {
		if err := no.Events.Set(conf); err != nil {
			return errors.Wrap(err, "failed to set events")
		}
	}

	return nil
}

// Load parses yaml over the default configuration.
func Load(b []byte) (config.Config, error) {
	var no Config
	if err := yaml.Unmarshal(b, &no); err != nil {
		return config.Config{}, errors.Wrap(err, "failed to parse yaml config")
	}

	conf := config.DefaultConfig()
	if err := no.Set(&conf); err != nil {
		return config.Config{}, err
	}

	if err := conf.IsValid(nil); err != nil {
		return config.Config{}, err
	}

	return conf, nil
}

func LoadFile(f string) (config.Config, error) {
	b, err := os.ReadFile(filepath.Clean(f))
	if err != nil {
		return config.Config{}, errors.Wrapf(err, "failed to read config file, %q", f)
	}

	return Load(b)
}
