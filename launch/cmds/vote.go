package cmds

import (
	"context"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/voting"
)

type VoteCommand struct {
	Open     VoteOpenCommand     `cmd:"" help:"open voting round on document"`
	Cast     VoteCastCommand     `cmd:"" help:"cast vote"`
	Finalize VoteFinalizeCommand `cmd:"" help:"finalize voting round"`
	Show     VoteShowCommand     `cmd:"" help:"show voting round"`
}

type VoteOpenCommand struct {
	Track    TrackFlag `arg:"" help:"qualification or verification"`
	Document uint64    `arg:"" help:"document id"`
}

func (cmd *VoteOpenCommand) Run(app *App) error {
	return app.Exec(func(ctx context.Context) (interface{}, error) {
		v, err := app.DAO.OpenVoting(ctx, app.Caller, cmd.Track.VoteType(), cmd.Document)
		if err != nil {
			return nil, err
		}

		return newVoteView(v), nil
	})
}

type VoteCastCommand struct {
	Track  TrackFlag  `arg:"" help:"qualification or verification"`
	Round  uint64     `arg:"" help:"round id"`
	Choice ChoiceFlag `arg:"" help:"yes or no"`
}

func (cmd *VoteCastCommand) Run(app *App) error {
	return app.Exec(func(ctx context.Context) (interface{}, error) {
		v, err := app.DAO.CastVote(ctx, app.Caller, cmd.Track.VoteType(), cmd.Round, bool(cmd.Choice))
		if err != nil {
			return nil, err
		}

		return newVoteView(v), nil
	})
}

type VoteFinalizeCommand struct {
	Track TrackFlag `arg:"" help:"qualification or verification"`
	Round uint64    `arg:"" help:"round id"`
}

func (cmd *VoteFinalizeCommand) Run(app *App) error {
	return app.Exec(func(ctx context.Context) (interface{}, error) {
		v, err := app.DAO.FinalizeVoting(ctx, app.Caller, cmd.Track.VoteType(), cmd.Round)
		if err != nil {
			return nil, err
		}

		return newVoteView(v), nil
	})
}

type VoteShowCommand struct {
	Track   TrackFlag    `arg:"" help:"qualification or verification"`
	Round   uint64       `arg:"" help:"round id"`
	Account base.Address `arg:"" optional:"" help:"show the receipt of account"`
}

func (cmd *VoteShowCommand) Run(app *App) error {
	vt := cmd.Track.VoteType()

	v, found, err := app.DAO.Round(vt, cmd.Round)
	switch {
	case err != nil:
		return err
	case !found:
		return voting.VoteNotFoundError.Errorf("track=%s round=%d", vt, cmd.Round)
	}

	count, err := app.DAO.RoundCount(vt)
	if err != nil {
		return err
	}

	m := map[string]interface{}{
		"round":       newVoteView(v),
		"round_count": count,
	}

	if len(cmd.Account) > 0 {
		choice, voted, err := app.DAO.Receipt(cmd.Account, vt, cmd.Round)
		if err != nil {
			return err
		}

		receipt := map[string]interface{}{"account": cmd.Account, "voted": voted}
		if voted {
			receipt["choice"] = choice
		}

		m["receipt"] = receipt
	}

	return app.Print(m)
}

type voteView struct {
	voting.Vote
	TrackName  string `json:"track_name"`
	StatusName string `json:"status_name"`
}

func newVoteView(v voting.Vote) voteView {
	return voteView{
		Vote:       v,
		TrackName:  v.Track.String(),
		StatusName: v.Status.String(),
	}
}
