package commands

import (
	"context"
	"fmt"

	"magazyn/internal/client/service"
	"magazyn/internal/config"
	"magazyn/internal/plural"
)

type historyCmd struct{}

func (historyCmd) Name() string        { return "history" }
func (historyCmd) Description() string { return "Pokaż historię jednego sprzętu" }
func (historyCmd) Usage() string       { return "history <equipmentId>" }

func (historyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	equipmentID, err := parseID(args[0])
	if err != nil {
		return err
	}

	inv := newInventory(cfg)
	events := inv.EquipmentHistory(ctx, equipmentID)
	for _, e := range events {
		who := "-"
		if e.User != nil {
			who = e.User.Name
		}
		fmt.Fprintf(Out, "%s  %-10s %-20s %s\n", service.FormatDate(e.Date), e.Action, who, e.Note)
	}
	fmt.Fprintf(Out, "Razem: %s\n", plural.FormatCount(len(events), "history"))
	return nil
}

func init() { RegisterCmd(historyCmd{}) }

type userHistoryCmd struct{}

func (userHistoryCmd) Name() string        { return "userhistory" }
func (userHistoryCmd) Description() string { return "Pokaż historię sprzętu użytkownika" }
func (userHistoryCmd) Usage() string       { return "userhistory <userId>" }

func (userHistoryCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	userID, err := parseID(args[0])
	if err != nil {
		return err
	}

	inv := newInventory(cfg)
	events := inv.UserHistory(ctx, userID)
	for _, e := range events {
		fmt.Fprintf(Out, "%s  %-10s %s (%s)\n",
			service.FormatDate(e.Date), e.Action, e.Equipment.Name, e.Equipment.Type)
	}
	fmt.Fprintf(Out, "Razem: %s\n", plural.FormatCount(len(events), "history"))
	return nil
}

func init() { RegisterCmd(userHistoryCmd{}) }

type refreshCmd struct{}

func (refreshCmd) Name() string        { return "refresh" }
func (refreshCmd) Description() string { return "Wymuś odświeżenie wszystkich cache'ów" }
func (refreshCmd) Usage() string       { return "refresh" }

func (refreshCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	inv := newInventory(cfg)
	inv.ForceRefreshAllData(ctx)
	fmt.Fprintln(Out, "Odświeżono dane")
	return nil
}

func init() { RegisterCmd(refreshCmd{}) }
