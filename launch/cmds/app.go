package cmds

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/dao"
	"github.com/bhdao/bhdao/events"
	"github.com/bhdao/bhdao/launch/config"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/logging"
)

// App is what every command runs against; the command line acts as the host
// of the governance core.
type App struct {
	*logging.Logging
	Config  config.Config
	DB      storage.Database
	Ticker  *dao.StoredTicker
	DAO     *dao.DAO
	Caller  base.Caller
	Out     io.Writer
	logSink *events.LogSink
	closers []func() error

	// implicitAuthority is set when no caller was given and the call runs as
	// the authority.
	implicitAuthority bool
}

func NewApp(conf config.Config, db storage.Database, as string, out io.Writer) (*App, error) {
	caller, err := resolveCaller(conf.Authority, as)
	if err != nil {
		return nil, err
	}

	app := &App{
		Logging: logging.NewModuleLogging("app"),
		Config:  conf,
		DB:      db,
		Ticker:  dao.NewStoredTicker(db),
		Caller:  caller,
		Out:     out,

		implicitAuthority: len(as) < 1,
	}

	sink, err := app.sink()
	if err != nil {
		_ = app.closeSinks()

		return nil, err
	}

	app.DAO = dao.NewDAO(db, app.Ticker, sink)

	return app, nil
}

func (app *App) SetLogging(l *logging.Logging) *logging.Logging {
	_ = app.DAO.SetLogging(l)

	if app.logSink != nil {
		_ = app.logSink.SetLogging(l)
	}

	return app.Logging.SetLogging(l)
}

// LogCaller logs the resolved caller. Running as the authority without
// --as is logged at info level.
func (app *App) LogCaller() {
	if app.implicitAuthority {
		app.Log().Info().Msg("no --as given; calling as the privileged authority")

		return
	}

	app.Log().Debug().Stringer("caller", app.Caller).Msg("caller resolved")
}

// resolveCaller authenticates the caller; the configured authority is the
// privileged caller.
func resolveCaller(authority base.Address, as string) (base.Caller, error) {
	if len(as) < 1 {
		return base.NewPrivilegedCaller(), nil
	}

	a, err := base.NewAddress(as)
	if err != nil {
		return base.Caller{}, errors.Wrap(err, "invalid caller")
	}

	if a.Equal(authority) {
		return base.NewPrivilegedCaller(), nil
	}

	return base.NewSignedCaller(a), nil
}

func (app *App) sink() (events.Sink, error) {
	var sinks events.Sinks

	c := app.Config.Events

	if c.Log {
		app.logSink = events.NewLogSink(zerolog.InfoLevel)

		sinks = append(sinks, app.logSink)
	}

	if len(c.File) > 0 {
		f, err := os.OpenFile(filepath.Clean(c.File), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open events file, %q", c.File)
		}

		app.closers = append(app.closers, f.Close)
		sinks = append(sinks, events.NewJSONSink(f))
	}

	if len(c.NATSURL) > 0 {
		ns, nc, err := events.ConnectNATSSink(c.NATSURL, c.NATSSubject)
		if err != nil {
			return nil, err
		}

		app.closers = append(app.closers, func() error {
			return nc.Drain()
		})
		sinks = append(sinks, ns)
	}

	return sinks, nil
}

// Commit moves the host clock after a committed call.
func (app *App) Commit(ctx context.Context) error {
	now, err := app.Ticker.Advance(ctx, 1)
	if err != nil {
		return err
	}

	app.Log().Debug().Stringer("tick", now).Msg("tick advanced")

	return nil
}

// Print writes v as indented json.
func (app *App) Print(v interface{}) error {
	b, err := util.JSONMarshalIndent(v)
	if err != nil {
		return err
	}

	_, err = app.Out.Write(append(b, '\n'))

	return err
}

// Exec runs a state changing call, advances the clock when it succeeds and
// prints its result.
func (app *App) Exec(f func(context.Context) (interface{}, error)) error {
	ctx := context.Background()

	v, err := f(ctx)
	if err != nil {
		return err
	}

	if err := app.Commit(ctx); err != nil {
		return err
	}

	if v == nil {
		return nil
	}

	return app.Print(v)
}

// Close closes the event sinks and the database.
func (app *App) Close() error {
	var failed []string

	if err := app.closeSinks(); err != nil {
		failed = append(failed, err.Error())
	}

	if err := app.DB.Close(); err != nil {
		failed = append(failed, err.Error())
	}

	if len(failed) > 0 {
		return errors.Errorf("failed to close: %q", failed)
	}

	return nil
}

func (app *App) closeSinks() error {
	var failed []string

	for i := range app.closers {
		if err := app.closers[i](); err != nil {
			failed = append(failed, err.Error())
		}
	}

	app.closers = nil

	if len(failed) > 0 {
		return errors.Errorf("failed to close sinks: %q", failed)
	}

	return nil
}
