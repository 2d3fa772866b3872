package yamlconfig

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/events"
	"github.com/bhdao/bhdao/launch/config"
	"github.com/bhdao/bhdao/role"
)

type testConfig struct {
	suite.Suite
}

func (t *testConfig) TestEmpty() {
	var n Config
	t.NoError(yaml.Unmarshal([]byte(""), &n))

	t.Nil(n.Storage)
	t.Nil(n.Authority)

	conf, err := Load([]byte(""))
	t.NoError(err)

	t.Equal(config.DefaultStorageURI, conf.Storage.URI().String())
	t.Equal(config.DefaultAuthority, conf.Authority)
	t.Equal(role.DefaultCollectionSpecs(), conf.Governance.Collections)
	t.Nil(conf.Governance.QualificationWindow)
	t.True(conf.Events.Log)
	t.Equal(events.DefaultNATSSubject, conf.Events.NATSSubject)
}

func (t *testConfig) TestFull() {
	y := `
storage:
  uri: mongodb://127.0.0.1:27017/bhdao
  cache: "dummy:"
authority: chain-admin
governance:
  qualification-window: 30
  verification-window: 60
  qualification-quorum: 3
  verification-quorum: 5
  collections:
    - role: collector
      total-supply: 7
    - role: contributor
      metadata: Writers
events:
  log: false
  file: /tmp/events.jsonl
  nats:
    url: nats://127.0.0.1:4222
    subject: dao.events
`

	conf, err := Load([]byte(y))
	t.NoError(err)

	t.Equal("mongodb", conf.Storage.URI().Scheme)
	t.Equal("dummy:", conf.Storage.Cache().String())
	t.Equal(base.Address("chain-admin"), conf.Authority)

	g := conf.Governance
	t.Equal(uint32(30), *g.QualificationWindow)
	t.Equal(uint32(60), *g.VerificationWindow)
	t.Equal(uint64(3), *g.QualificationQuorum)
	t.Equal(uint64(5), *g.VerificationQuorum)

	t.Equal([]role.CollectionSpec{
		{Role: base.QualifierRole, TotalSupply: 200, Metadata: []byte("Qualifiers")},
		{Role: base.CollectorRole, TotalSupply: 7, Metadata: []byte("Collectors")},
		{Role: base.ContributorRole, TotalSupply: 1000, Metadata: []byte("Writers")},
	}, g.Collections)

	t.Equal(config.Events{
		Log:         false,
		File:        "/tmp/events.jsonl",
		NATSURL:     "nats://127.0.0.1:4222",
		NATSSubject: "dao.events",
	}, conf.Events)
}

func (t *testConfig) TestLevelDBPath() {
	conf, err := Load([]byte(`
storage:
  uri: leveldb:/var/lib/bhdao
`))
	t.NoError(err)
	t.Equal("/var/lib/bhdao", config.LevelDBPath(conf.Storage.URI()))
}

func (t *testConfig) TestInvalid() {
	cases := map[string]string{
		"unknown storage": `
storage:
  uri: redis://127.0.0.1
`,
		"unknown cache": `
storage:
  cache: "memcache:"
`,
		"authority": `
authority: "chain admin"
`,
		"zero window": `
governance:
  verification-window: 0
`,
		"unknown role": `
governance:
  collections:
    - role: reviewer
`,
		"empty nats subject": `
events:
  nats:
    url: nats://127.0.0.1:4222
    subject: ""
`,
	}

	for name, y := range cases {
		_, err := Load([]byte(y))
		t.Error(err, name)
	}
}

func TestConfig(t *testing.T) {
	suite.Run(t, new(testConfig))
}
