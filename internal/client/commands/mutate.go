package commands

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"magazyn/internal/client/service"
	"magazyn/internal/config"
	"magazyn/internal/model"
	"magazyn/internal/plural"
)

type addEquipmentCmd struct{}

func (addEquipmentCmd) Name() string        { return "addequipment" }
func (addEquipmentCmd) Description() string { return "Dodaj sprzęt do magazynu" }
func (addEquipmentCmd) Usage() string {
	return "addequipment <name> <type> <serialNumber> [clnNumber]"
}

func (addEquipmentCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return ErrUsage
	}
	cln := ""
	if len(args) == 4 {
		cln = args[3]
	}
	inv := newInventory(cfg)
	if !inv.AddEquipment(ctx, args[0], args[1], args[2], cln, "", "", false) {
		return errors.New("nie udało się dodać sprzętu")
	}
	fmt.Fprintln(Out, "Dodano sprzęt")
	return nil
}

func init() { RegisterCmd(addEquipmentCmd{}) }

type delEquipmentCmd struct{}

func (delEquipmentCmd) Name() string        { return "delequipment" }
func (delEquipmentCmd) Description() string { return "Usuń sprzęt z magazynu" }
func (delEquipmentCmd) Usage() string       { return "delequipment <equipmentId>" }

func (delEquipmentCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	equipmentID, err := parseID(args[0])
	if err != nil {
		return err
	}
	inv := newInventory(cfg)
	if err := inv.DeleteEquipment(ctx, equipmentID); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Usunięto sprzęt %d\n", equipmentID)
	return nil
}

func init() { RegisterCmd(delEquipmentCmd{}) }

type delUserCmd struct{}

func (delUserCmd) Name() string        { return "deluser" }
func (delUserCmd) Description() string { return "Usuń użytkownika" }
func (delUserCmd) Usage() string       { return "deluser <userId>" }

func (delUserCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	userID, err := parseID(args[0])
	if err != nil {
		return err
	}
	inv := newInventory(cfg)
	if err := inv.DeleteUser(ctx, userID); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Usunięto użytkownika %d\n", userID)
	return nil
}

func init() { RegisterCmd(delUserCmd{}) }

type damageCmd struct{}

func (damageCmd) Name() string        { return "damage" }
func (damageCmd) Description() string { return "Oznacz sprzęt jako uszkodzony" }
func (damageCmd) Usage() string       { return "damage <equipmentId> [note]" }

func (damageCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return setDamaged(ctx, cfg, args, true, "nie udało się oznaczyć sprzętu jako uszkodzonego")
}

func init() { RegisterCmd(damageCmd{}) }

type repairCmd struct{}

func (repairCmd) Name() string        { return "repair" }
func (repairCmd) Description() string { return "Oznacz sprzęt jako naprawiony" }
func (repairCmd) Usage() string       { return "repair <equipmentId> [note]" }

func (repairCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return setDamaged(ctx, cfg, args, false, "nie udało się oznaczyć sprzętu jako naprawionego")
}

func init() { RegisterCmd(repairCmd{}) }

func setDamaged(ctx context.Context, cfg *config.Config, args []string, damaged bool, failMsg string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	equipmentID, err := parseID(args[0])
	if err != nil {
		return err
	}
	note := strings.Join(args[1:], " ")

	inv := newInventory(cfg)
	if !inv.UpdateEquipmentDamageStatus(ctx, equipmentID, damaged, nil, note) {
		return errors.New(failMsg)
	}
	fmt.Fprintf(Out, "Zaktualizowano sprzęt %d\n", equipmentID)
	return nil
}

type importCmd struct{}

func (importCmd) Name() string        { return "import" }
func (importCmd) Description() string { return "Zaimportuj sprzęt z pliku CSV" }
func (importCmd) Usage() string       { return "import <file.csv>" }

// Kolumny CSV: name,type,serialNumber,clnNumber,inventoryNumber,roomLocation,damaged
// (nagłówek wymagany, kolumny od clnNumber opcjonalne).
func (importCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	items, err := readImportFile(args[0])
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return errors.New("plik nie zawiera żadnych wierszy")
	}

	inv := newInventory(cfg)
	resp, err := inv.BulkAddEquipment(ctx, items)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Dodano: %s, pominięto: %d, błędy: %d\n",
		plural.FormatCount(resp.Summary.Added, "item"), resp.Summary.Skipped, resp.Summary.Errors)
	for _, s := range resp.Results.Skipped {
		fmt.Fprintf(Out, "  pominięto %s: %s\n", s.Item.SerialNumber, s.Reason)
	}
	for _, e := range resp.Results.Errors {
		fmt.Fprintf(Out, "  błąd %s: %s\n", e.Item.SerialNumber, e.Error)
	}
	return nil
}

func init() { RegisterCmd(importCmd{}) }

func readImportFile(path string) ([]service.BulkItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, errors.New("pusty plik CSV")
	}

	field := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	items := make([]service.BulkItem, 0, len(records)-1)
	for _, row := range records[1:] { // pomija nagłówek
		item := service.BulkItem{
			Name:            field(row, 0),
			Type:            field(row, 1),
			SerialNumber:    field(row, 2),
			InventoryNumber: field(row, 4),
			Damaged:         strings.EqualFold(field(row, 6), "true") || field(row, 6) == "1",
		}
		if item.Type == model.TypeComputer {
			item.CLNNumber = field(row, 3)
		}
		if item.Type == model.TypeMonitor || item.Type == model.TypePrinter {
			item.RoomLocation = field(row, 5)
		}
		items = append(items, item)
	}
	return items, nil
}
