package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"magazyn/internal/config"
)

type assignCmd struct{}

func (assignCmd) Name() string        { return "assign" }
func (assignCmd) Description() string { return "Przypisz sprzęt użytkownikowi" }
func (assignCmd) Usage() string       { return "assign <equipmentId> <userId> [note]" }

func (assignCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	equipmentID, err := parseID(args[0])
	if err != nil {
		return err
	}
	userID, err := parseID(args[1])
	if err != nil {
		return err
	}
	note := strings.Join(args[2:], " ")

	inv := newInventory(cfg)
	if !inv.AssignEquipment(ctx, equipmentID, userID, note) {
		return errors.New("nie udało się przypisać sprzętu")
	}
	fmt.Fprintf(Out, "Przypisano sprzęt %d użytkownikowi %d\n", equipmentID, userID)
	return nil
}

func init() { RegisterCmd(assignCmd{}) }

type unassignCmd struct{}

func (unassignCmd) Name() string        { return "unassign" }
func (unassignCmd) Description() string { return "Zwróć sprzęt do magazynu" }
func (unassignCmd) Usage() string       { return "unassign <equipmentId> [note]" }

func (unassignCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	equipmentID, err := parseID(args[0])
	if err != nil {
		return err
	}
	note := strings.Join(args[1:], " ")

	inv := newInventory(cfg)
	if !inv.UnassignEquipment(ctx, equipmentID, note) {
		return errors.New("nie udało się zwrócić sprzętu")
	}
	fmt.Fprintf(Out, "Zwrócono sprzęt %d\n", equipmentID)
	return nil
}

func init() { RegisterCmd(unassignCmd{}) }
