package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"magazyn/internal/config"
	"magazyn/internal/plural"
)

type usersCmd struct{}

func (usersCmd) Name() string        { return "users" }
func (usersCmd) Description() string { return "Pokaż wszystkich użytkowników" }
func (usersCmd) Usage() string       { return "users" }

func (usersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	inv := newInventory(cfg)
	users := inv.Users(ctx)
	for _, u := range users {
		held := inv.EquipmentByUser(ctx, u.ID)
		fmt.Fprintf(Out, "%4d  %-30s %-30s %s\n",
			u.ID, u.Name, u.Email, plural.FormatCount(len(held), "item"))
	}
	fmt.Fprintf(Out, "Razem: %s\n", plural.FormatCount(len(users), "user"))
	return nil
}

func init() { RegisterCmd(usersCmd{}) }

type addUserCmd struct{}

func (addUserCmd) Name() string        { return "adduser" }
func (addUserCmd) Description() string { return "Dodaj użytkownika" }
func (addUserCmd) Usage() string       { return "adduser <name> <email>" }

func (addUserCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 || strings.TrimSpace(args[0]) == "" {
		return ErrUsage
	}
	inv := newInventory(cfg)
	if !inv.AddUser(ctx, args[0], args[1]) {
		return errors.New("nie udało się dodać użytkownika")
	}
	fmt.Fprintln(Out, "Dodano użytkownika")
	return nil
}

func init() { RegisterCmd(addUserCmd{}) }
