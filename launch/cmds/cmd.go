package cmds

import (
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/bhdao/bhdao/launch/config"
	yamlconfig "github.com/bhdao/bhdao/launch/config/yaml"
)

var (
	DefaultName        = "bhdao"
	DefaultDescription = "bhdao governance"
	MainOptions        = kong.HelpOptions{NoAppSummary: false, Compact: true, Summary: false, Tree: true}
)

var defaultKongOptions = []kong.Option{
	kong.Name(DefaultName),
	kong.Description(DefaultDescription),
	kong.UsageOnError(),
	kong.ConfigureHelp(MainOptions),
	LogVars,
}

func Context(args []string, flags interface{}, options ...kong.Option) (*kong.Context, error) {
	ops := make([]kong.Option, len(defaultKongOptions)+len(options))
	copy(ops, defaultKongOptions)
	copy(ops[len(defaultKongOptions):], options)

	p, err := kong.New(flags, ops...)
	if err != nil {
		return nil, err
	}

	return p.Parse(args)
}

// MainCommand is the command tree of bhdao.
type MainCommand struct {
	*LogFlags
	Version    kong.VersionFlag  `help:"print version"`
	Config     string            `help:"yaml config file" type:"existingfile" optional:""`
	As         string            `help:"caller address; empty or the authority address is the privileged caller"`
	Init       InitCommand       `cmd:"" help:"create role collections and apply governance parameters"`
	Tick       TickCommand       `cmd:"" help:"host clock"`
	Collection CollectionCommand `cmd:"" help:"membership token collections"`
	Token      TokenCommand      `cmd:"" help:"membership tokens"`
	Role       RoleCommand       `cmd:"" help:"governance roles"`
	Document   DocumentCommand   `cmd:"" help:"documents"`
	Vote       VoteCommand       `cmd:"" help:"qualification and verification voting"`
	Params     ParamsCommand     `cmd:"" help:"voting windows and quorums"`
	Tx         TxCommand         `cmd:"" help:"transaction counters"`
}

func NewMainCommand() *MainCommand {
	return &MainCommand{LogFlags: &LogFlags{}}
}

// LoadConfig loads the config file of flags or the default configuration.
func (cmd *MainCommand) LoadConfig() (config.Config, error) {
	if len(cmd.Config) < 1 {
		conf := config.DefaultConfig()

		return conf, conf.IsValid(nil)
	}

	return yamlconfig.LoadFile(cmd.Config)
}

// Run parses args and runs the selected command.
func Run(args []string, version string, out io.Writer) error {
	flags := NewMainCommand()

	kctx, err := Context(args, flags, kong.Vars{"version": version})
	if err != nil {
		return err
	}

	if out == nil {
		out = os.Stdout
	}

	lg, err := SetupLoggingFromFlags(flags.LogFlags, os.Stderr)
	if err != nil {
		return err
	}

	conf, err := flags.LoadConfig()
	if err != nil {
		return err
	}

	db, err := OpenDatabase(conf.Storage)
	if err != nil {
		return err
	}

	app, err := NewApp(conf, db, flags.As, out)
	if err != nil {
		_ = db.Close()

		return err
	}

	defer func() {
		if err := app.Close(); err != nil {
			lg.Log().Error().Err(err).Msg("failed to close")
		}
	}()

	_ = app.SetLogging(lg)

	app.LogCaller()

	app.Log().Debug().Interface("flags", flags).Msg("flags parsed")

	return kctx.Run(app)
}
