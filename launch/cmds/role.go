package cmds

import (
	"context"

	"github.com/bhdao/bhdao/base"
)

type RoleCommand struct {
	Add   RoleAddCommand   `cmd:"" help:"admit account to role"`
	Check RoleCheckCommand `cmd:"" help:"check membership of account"`
	List  RoleListCommand  `cmd:"" help:"list members of role"`
}

type RoleAddCommand struct {
	Role    RoleFlag     `arg:"" help:"qualifier, collector or contributor"`
	Account base.Address `arg:"" help:"account address"`
}

func (cmd *RoleAddCommand) Run(app *App) error {
	account := cmd.Account

	return app.Exec(func(ctx context.Context) (interface{}, error) {
		count, err := app.DAO.AddMember(ctx, app.Caller, cmd.Role.Role(), account)
		if err != nil {
			return nil, err
		}

		return map[string]interface{}{
			"role":    cmd.Role.Role().String(),
			"account": account,
			"count":   count,
		}, nil
	})
}

type RoleCheckCommand struct {
	Role    RoleFlag     `arg:"" help:"qualifier, collector or contributor"`
	Account base.Address `arg:"" help:"account address"`
}

func (cmd *RoleCheckCommand) Run(app *App) error {
	account := cmd.Account

	isMember, err := app.DAO.IsMember(cmd.Role.Role(), account)
	if err != nil {
		return err
	}

	return app.Print(map[string]interface{}{
		"role":      cmd.Role.Role().String(),
		"account":   account,
		"is_member": isMember,
	})
}

type RoleListCommand struct {
	Role RoleFlag `arg:"" help:"qualifier, collector or contributor"`
}

func (cmd *RoleListCommand) Run(app *App) error {
	members, err := app.DAO.Members(cmd.Role.Role())
	if err != nil {
		return err
	}

	count, err := app.DAO.MembershipCount(cmd.Role.Role())
	if err != nil {
		return err
	}

	return app.Print(map[string]interface{}{
		"role":    cmd.Role.Role().String(),
		"members": members,
		"count":   count,
	})
}
