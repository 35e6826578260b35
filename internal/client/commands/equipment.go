package commands

import (
	"context"
	"fmt"
	"strconv"

	"magazyn/internal/config"
	"magazyn/internal/plural"
)

type equipmentCmd struct{}

func (equipmentCmd) Name() string        { return "equipment" }
func (equipmentCmd) Description() string { return "Pokaż cały sprzęt z przypisanymi użytkownikami" }
func (equipmentCmd) Usage() string       { return "equipment" }

func (equipmentCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	inv := newInventory(cfg)
	items := inv.AllEquipment(ctx)
	if len(items) == 0 {
		fmt.Fprintln(Out, "Magazyn jest pusty")
		return nil
	}
	for _, item := range items {
		holder := "-"
		if item.AssignedUser != nil {
			holder = item.AssignedUser.Name
		}
		damaged := ""
		if item.Damaged {
			damaged = " [uszkodzony]"
		}
		fmt.Fprintf(Out, "%4d  %-30s %-16s SN=%-20s -> %s%s\n",
			item.ID, item.Name, item.Type, item.SerialNumber, holder, damaged)
	}
	fmt.Fprintf(Out, "Razem: %s\n", plural.FormatCount(len(items), "equipment"))
	return nil
}

func init() { RegisterCmd(equipmentCmd{}) }

type availableCmd struct{}

func (availableCmd) Name() string        { return "available" }
func (availableCmd) Description() string { return "Pokaż sprzęt dostępny (nieprzypisany)" }
func (availableCmd) Usage() string       { return "available" }

func (availableCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	inv := newInventory(cfg)
	items := inv.AvailableEquipment(ctx)
	for _, item := range items {
		fmt.Fprintf(Out, "%4d  %-30s %-16s SN=%s\n", item.ID, item.Name, item.Type, item.SerialNumber)
	}
	fmt.Fprintf(Out, "Dostępne: %s\n", plural.FormatCount(len(items), "item"))
	return nil
}

func init() { RegisterCmd(availableCmd{}) }

type nextCLNCmd struct{}

func (nextCLNCmd) Name() string        { return "nextcln" }
func (nextCLNCmd) Description() string { return "Zaproponuj następny numer CLN dla komputera" }
func (nextCLNCmd) Usage() string       { return "nextcln" }

func (nextCLNCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	inv := newInventory(cfg)
	fmt.Fprintln(Out, inv.GenerateNextCLNNumber(ctx))
	return nil
}

func init() { RegisterCmd(nextCLNCmd{}) }

// parseID is shared by commands taking numeric ids.
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, ErrUsage
	}
	return id, nil
}
