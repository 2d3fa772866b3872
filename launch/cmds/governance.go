package cmds

import (
	"context"

	"github.com/bhdao/bhdao/base"
)

type InitCommand struct{}

// Run creates the role collections and applies the configured voting
// parameters, each as its own call.
func (*InitCommand) Run(app *App) error {
	return app.Exec(func(ctx context.Context) (interface{}, error) {
		g := app.Config.Governance

		if err := app.DAO.InitCollections(ctx, app.Caller, g.Collections); err != nil {
			return nil, err
		}

		for _, vt := range []base.VoteType{base.VoteQualification, base.VoteVerification} {
			w, q := g.QualificationWindow, g.QualificationQuorum
			if vt == base.VoteVerification {
				w, q = g.VerificationWindow, g.VerificationQuorum
			}

			if w != nil {
				if err := app.DAO.SetVotingWindow(ctx, app.Caller, vt, *w); err != nil {
					return nil, err
				}
			}

			if q != nil {
				if err := app.DAO.SetQuorum(ctx, app.Caller, vt, *q); err != nil {
					return nil, err
				}
			}
		}

		return app.DAO.Params()
	})
}

type TickCommand struct {
	Show    TickShowCommand    `cmd:"" default:"1" help:"current tick"`
	Advance TickAdvanceCommand `cmd:"" help:"simulate elapsed blocks"`
}

type TickShowCommand struct{}

func (*TickShowCommand) Run(app *App) error {
	now, err := app.DAO.Tick()
	if err != nil {
		return err
	}

	return app.Print(map[string]interface{}{"tick": now})
}

type TickAdvanceCommand struct {
	N uint64 `arg:"" optional:"" default:"1" help:"number of ticks"`
}

func (cmd *TickAdvanceCommand) Run(app *App) error {
	now, err := app.Ticker.Advance(context.Background(), cmd.N)
	if err != nil {
		return err
	}

	return app.Print(map[string]interface{}{"tick": now})
}

type ParamsCommand struct {
	Show      ParamsShowCommand      `cmd:"" default:"1" help:"voting windows and quorums"`
	SetWindow ParamsSetWindowCommand `cmd:"" help:"set voting window of track"`
	SetQuorum ParamsSetQuorumCommand `cmd:"" help:"set quorum of track"`
}

type ParamsShowCommand struct{}

func (*ParamsShowCommand) Run(app *App) error {
	params, err := app.DAO.Params()
	if err != nil {
		return err
	}

	return app.Print(params)
}

type ParamsSetWindowCommand struct {
	Track  TrackFlag `arg:"" help:"qualification or verification"`
	Window uint32    `arg:"" help:"window in ticks"`
}

func (cmd *ParamsSetWindowCommand) Run(app *App) error {
	return app.Exec(func(ctx context.Context) (interface{}, error) {
		if err := app.DAO.SetVotingWindow(ctx, app.Caller, cmd.Track.VoteType(), cmd.Window); err != nil {
			return nil, err
		}

		return app.DAO.Params()
	})
}

type ParamsSetQuorumCommand struct {
	Track  TrackFlag `arg:"" help:"qualification or verification"`
	Quorum uint64    `arg:"" help:"minimum number of votes"`
}

func (cmd *ParamsSetQuorumCommand) Run(app *App) error {
	return app.Exec(func(ctx context.Context) (interface{}, error) {
		if err := app.DAO.SetQuorum(ctx, app.Caller, cmd.Track.VoteType(), cmd.Quorum); err != nil {
			return nil, err
		}

		return app.DAO.Params()
	})
}

type TxCommand struct {
	Show TxShowCommand `cmd:"" help:"transaction counters"`
}

type TxShowCommand struct {
	Account base.Address `arg:"" optional:"" help:"account address"`
}

func (cmd *TxShowCommand) Run(app *App) error {
	total, err := app.DAO.TotalTransactions()
	if err != nil {
		return err
	}

	m := map[string]interface{}{"total": total}

	if len(cmd.Account) > 0 {
		n, err := app.DAO.Transactions(cmd.Account)
		if err != nil {
			return err
		}

		m["account"] = cmd.Account
		m["transactions"] = n
	}

	return app.Print(m)
}
