package cmds

import (
	"context"

	"github.com/bhdao/bhdao/base"
)

type CollectionCommand struct {
	Create CollectionCreateCommand `cmd:"" help:"create collection"`
	Show   CollectionShowCommand   `cmd:"" help:"show collection"`
}

type CollectionCreateCommand struct {
	ID          uint32 `arg:"" name:"id" help:"collection id"`
	TotalSupply uint32 `arg:"" help:"maximum number of active tokens"`
	Metadata    string `help:"collection metadata"`
}

func (cmd *CollectionCreateCommand) Run(app *App) error {
	id := base.CollectionID(cmd.ID)

	return app.Exec(func(ctx context.Context) (interface{}, error) {
		if err := app.DAO.CreateCollection(ctx, app.Caller, id, cmd.TotalSupply, []byte(cmd.Metadata)); err != nil {
			return nil, err
		}

		col, _, err := app.DAO.Collection(id)

		return col, err
	})
}

type CollectionShowCommand struct {
	ID uint32 `arg:"" name:"id" help:"collection id"`
}

func (cmd *CollectionShowCommand) Run(app *App) error {
	id := base.CollectionID(cmd.ID)

	col, found, err := app.DAO.Collection(id)
	if err != nil {
		return err
	}

	active, err := app.DAO.ActiveTokens(id)
	if err != nil {
		return err
	}

	total, err := app.DAO.TotalTokens(id)
	if err != nil {
		return err
	}

	return app.Print(map[string]interface{}{
		"found":         found,
		"collection":    col,
		"metadata":      string(col.Metadata),
		"active_tokens": active,
		"total_tokens":  total,
	})
}

type TokenCommand struct {
	Mint TokenMintCommand `cmd:"" help:"mint token to owner"`
	Burn TokenBurnCommand `cmd:"" help:"burn the token of caller"`
	Show TokenShowCommand `cmd:"" help:"show token of owner"`
}

type TokenMintCommand struct {
	Collection uint32       `arg:"" help:"collection id"`
	Owner      base.Address `arg:"" help:"owner address"`
}

func (cmd *TokenMintCommand) Run(app *App) error {
	return app.Exec(func(ctx context.Context) (interface{}, error) {
		return app.DAO.Mint(ctx, app.Caller, base.CollectionID(cmd.Collection), cmd.Owner)
	})
}

type TokenBurnCommand struct {
	Collection uint32 `arg:"" help:"collection id"`
}

func (cmd *TokenBurnCommand) Run(app *App) error {
	return app.Exec(func(ctx context.Context) (interface{}, error) {
		return app.DAO.Burn(ctx, app.Caller, base.CollectionID(cmd.Collection))
	})
}

type TokenShowCommand struct {
	Collection uint32       `arg:"" help:"collection id"`
	Owner      base.Address `arg:"" help:"owner address"`
}

func (cmd *TokenShowCommand) Run(app *App) error {
	t, found, err := app.DAO.Token(cmd.Owner, base.CollectionID(cmd.Collection))
	if err != nil {
		return err
	}

	return app.Print(map[string]interface{}{"found": found, "token": t})
}
