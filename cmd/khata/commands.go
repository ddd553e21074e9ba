package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/daudsoft/khata/ledger"
)

// =============================================================================
// RECORDING - add, pay, edit, delete
// =============================================================================

func (a *app) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a credit sale or a purchase",
	}
	cmd.AddCommand(
		a.newTradeCmd("sale", ledger.KindSale, "client"),
		a.newTradeCmd("purchase", ledger.KindPurchase, "supplier"),
	)
	return cmd
}

func (a *app) newTradeCmd(use string, kind ledger.Kind, partyFlag string) *cobra.Command {
	var (
		date, party, product, unit string
		qty, rate, amount          string
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: "Record a " + use + " on credit",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.tradeInput(cmd, date, party, product, unit, qty, rate, amount)
			if err != nil {
				return err
			}
			e, err := ledger.NewEntry(kind, in)
			if err != nil {
				return err
			}
			if err := a.repo.Append(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Printf("Recorded %s %s: %s, Rs. %s (ref %s)\n", use, e.ID, e.Party, e.Amount, e.Reference())
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "entry date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&party, partyFlag, "", partyFlag+" name")
	cmd.Flags().StringVar(&product, "product", "", "product name")
	cmd.Flags().StringVar(&qty, "qty", "", "quantity")
	cmd.Flags().StringVar(&unit, "unit", "", "unit label (default from catalog)")
	cmd.Flags().StringVar(&rate, "rate", "", "unit price (default from catalog)")
	cmd.Flags().StringVar(&amount, "amount", "", "total amount (default qty x rate)")
	cmd.MarkFlagRequired(partyFlag)
	cmd.MarkFlagRequired("product")
	return cmd
}

// tradeInput assembles an EntryInput, applying the shell-side conveniences:
// catalog rate/unit lookup for known products and amount auto-fill from
// qty x rate. The core trusts whatever amount ends up here.
func (a *app) tradeInput(cmd *cobra.Command, date, party, product, unit, qty, rate, amount string) (ledger.EntryInput, error) {
	var in ledger.EntryInput
	var err error

	if in.Date, err = parseDateFlag(date); err != nil {
		return in, err
	}
	in.Party = party
	in.Product = product
	in.Unit = unit

	if in.Quantity, err = parseDec(qty, "qty"); err != nil {
		return in, err
	}
	if in.UnitPrice, err = parseDec(rate, "rate"); err != nil {
		return in, err
	}

	if p, ok := a.repo.Settings(cmd.Context()).FindProduct(product); ok {
		if rate == "" {
			in.UnitPrice = p.Price
		}
		if unit == "" {
			in.Unit = p.Unit
		}
	}

	if in.Amount, err = parseDec(amount, "amount"); err != nil {
		return in, err
	}
	if amount == "" {
		in.Amount = in.Quantity.Mul(in.UnitPrice)
	}
	return in, nil
}

func (a *app) newPayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Record a cash settlement",
	}
	cmd.AddCommand(
		a.newPaymentCmd("in", ledger.KindPaymentIn, "client", "Receive cash from a client"),
		a.newPaymentCmd("out", ledger.KindPaymentOut, "supplier", "Pay cash to a supplier"),
	)
	return cmd
}

func (a *app) newPaymentCmd(use string, kind ledger.Kind, partyFlag, short string) *cobra.Command {
	var date, party, amount string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateFlag(date)
			if err != nil {
				return err
			}
			amt, err := parseDec(amount, "amount")
			if err != nil {
				return err
			}
			e, err := ledger.NewEntry(kind, ledger.EntryInput{Date: d, Party: party, Amount: amt})
			if err != nil {
				return err
			}
			if err := a.repo.Append(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Printf("Recorded payment %s: %s, Rs. %s (ref %s)\n", e.ID, e.Party, e.Amount, e.Reference())
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "payment date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&party, partyFlag, "", partyFlag+" name")
	cmd.Flags().StringVar(&amount, "amount", "", "cash amount")
	cmd.MarkFlagRequired(partyFlag)
	cmd.MarkFlagRequired("amount")
	return cmd
}

func (a *app) newEditCmd() *cobra.Command {
	var date, party, product, unit, qty, rate, amount string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an entry (its id and kind never change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, _, err := a.repo.Find(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// Start from the existing values; only flags the user set change.
			patch := ledger.EntryPatch{
				Date:      existing.Date,
				Party:     existing.Party,
				Product:   existing.Product,
				Quantity:  existing.Quantity,
				Unit:      existing.Unit,
				UnitPrice: existing.UnitPrice,
				Amount:    existing.Amount,
			}
			flags := cmd.Flags()
			if flags.Changed("date") {
				if patch.Date, err = ledger.ParseDate(date); err != nil {
					return err
				}
			}
			if flags.Changed("party") {
				patch.Party = party
			}
			if flags.Changed("product") {
				patch.Product = product
			}
			if flags.Changed("unit") {
				patch.Unit = unit
			}
			if flags.Changed("qty") {
				if patch.Quantity, err = parseDec(qty, "qty"); err != nil {
					return err
				}
			}
			if flags.Changed("rate") {
				if patch.UnitPrice, err = parseDec(rate, "rate"); err != nil {
					return err
				}
			}
			if flags.Changed("amount") {
				if patch.Amount, err = parseDec(amount, "amount"); err != nil {
					return err
				}
			}

			updated, err := ledger.UpdateEntry(existing, patch)
			if err != nil {
				return err
			}
			if err := a.repo.Upsert(cmd.Context(), updated); err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", updated.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&party, "party", "", "new party name")
	cmd.Flags().StringVar(&product, "product", "", "new product name")
	cmd.Flags().StringVar(&qty, "qty", "", "new quantity")
	cmd.Flags().StringVar(&unit, "unit", "", "new unit label")
	cmd.Flags().StringVar(&rate, "rate", "", "new unit price")
	cmd.Flags().StringVar(&amount, "amount", "", "new total amount")
	return cmd
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, col, err := a.repo.Find(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.repo.Remove(cmd.Context(), col, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

// =============================================================================
// BACKUP / RESTORE
// =============================================================================

func (a *app) newBackupCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a full backup of the ledger to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := a.repo.ExportSnapshot(cmd.Context())
			data, err := ledger.EncodeSnapshot(snap)
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = ledger.BackupFileName(ledger.Today().Time)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("Backup written to %s (%d sales, %d expenses, %d clients)\n",
				path, len(snap.Sales), len(snap.Expenses), len(snap.Clients))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default Ledger_Backup_<date>.json)")
	return cmd
}

func (a *app) newRestoreCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace ALL ledger data with a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			snap, err := ledger.DecodeSnapshot(data)
			if err != nil {
				return err
			}
			if !yes && !confirm("Overwrite all ledger data?") {
				fmt.Println("Restore cancelled.")
				return nil
			}
			if err := a.repo.ImportSnapshot(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Printf("Restored %d sales, %d expenses, %d clients from %s\n",
				len(snap.Sales), len(snap.Expenses), len(snap.Clients), args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// =============================================================================
// SETTINGS
// =============================================================================

func (a *app) newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or replace the business settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.repo.Settings(cmd.Context())
			fmt.Printf("Business: %s\nPhone:    %s\n\nProducts:\n", s.AppName, s.Phone)
			for _, p := range s.Products {
				fmt.Printf("  %-12s Rs. %s / %s\n", p.Name, p.Price, p.Unit)
			}
			fmt.Println("\nSuppliers:")
			for _, sup := range s.Suppliers {
				fmt.Printf("  %s\n", sup)
			}
			fmt.Println("\nClients:")
			for _, c := range a.repo.Clients(cmd.Context()) {
				fmt.Printf("  %s\n", c)
			}
			return nil
		},
	}

	var name, phone, products, suppliers, clients string
	set := &cobra.Command{
		Use:   "set",
		Short: "Replace settings fields (the document is saved wholesale)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.repo.Settings(cmd.Context())
			flags := cmd.Flags()
			if flags.Changed("name") {
				s.AppName = name
			}
			if flags.Changed("phone") {
				s.Phone = phone
			}
			if flags.Changed("products") {
				s.Products = parseProducts(products)
			}
			if flags.Changed("suppliers") {
				s.Suppliers = splitList(suppliers)
			}
			if err := a.repo.SaveSettings(cmd.Context(), s); err != nil {
				return err
			}
			if flags.Changed("clients") {
				if err := a.repo.SaveClients(cmd.Context(), splitList(clients)); err != nil {
					return err
				}
			}
			fmt.Println("Settings saved.")
			return nil
		},
	}
	set.Flags().StringVar(&name, "name", "", "business name")
	set.Flags().StringVar(&phone, "phone", "", "phone number")
	set.Flags().StringVar(&products, "products", "", `product catalog, "Name:Price:Unit" comma separated`)
	set.Flags().StringVar(&suppliers, "suppliers", "", "supplier names, comma separated")
	set.Flags().StringVar(&clients, "clients", "", "client names, comma separated")

	cmd.AddCommand(show, set)
	return cmd
}

// =============================================================================
// HELPERS
// =============================================================================

func parseDateFlag(s string) (ledger.Date, error) {
	if s == "" {
		return ledger.Today(), nil
	}
	return ledger.ParseDate(s)
}

func parseDec(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", field, s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseProducts parses the "Name:Price:Unit" comma-separated catalog
// format. Missing pieces fall back the same way the settings form always
// has: Unknown / 0 / Unit.
func parseProducts(s string) []ledger.Product {
	var out []ledger.Product
	for _, item := range splitList(s) {
		parts := strings.SplitN(item, ":", 3)
		p := ledger.Product{Name: strings.TrimSpace(parts[0]), Unit: "Unit"}
		if p.Name == "" {
			p.Name = "Unknown"
		}
		if len(parts) > 1 {
			if d, err := decimal.NewFromString(strings.TrimSpace(parts[1])); err == nil {
				p.Price = d
			}
		}
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			p.Unit = strings.TrimSpace(parts[2])
		}
		out = append(out, p)
	}
	return out
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
