package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daudsoft/khata/ledger"
)

// =============================================================================
// LIST VIEWS - newest first
// =============================================================================

func (a *app) newListCmd() *cobra.Command {
	var party string
	cmd := &cobra.Command{
		Use:       "list {sales|expenses}",
		Short:     "List the sales or expenditure records",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"sales", "expenses"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []ledger.Entry
			if args[0] == "sales" {
				entries = a.repo.Sales(cmd.Context())
			} else {
				entries = a.repo.Expenses(cmd.Context())
			}
			if party != "" {
				entries = ledger.FilterParty(entries, party)
			}
			ledger.SortNewestFirst(entries)
			renderEntryTable(entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&party, "party", "", "only this client/supplier")
	return cmd
}

func (a *app) newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Business totals and recent transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sales := a.repo.Sales(ctx)
			expenses := a.repo.Expenses(ctx)
			totals := ledger.AggregateTotals(sales, expenses)

			fmt.Printf("%s\n\n", a.repo.Settings(ctx).AppName)
			fmt.Printf("Total Product Sales:  Rs. %s\n", totals.TotalSales)
			fmt.Printf("Total Purchases:      Rs. %s\n", totals.TotalPurchases)
			fmt.Printf("Stock Balance (P/L):  Rs. %s\n\n", totals.NetPosition)

			fmt.Println("Recent Transactions")
			renderEntryTable(ledger.Recent(sales, expenses, 10))
			return nil
		},
	}
}

// =============================================================================
// ACCOUNT VIEWS
// =============================================================================

func (a *app) newAccountsCmd(side ledger.Side) *cobra.Command {
	use, short := "clients", "Client accounts and outstanding balances"
	if side == ledger.SideSupplier {
		use, short = "suppliers", "Supplier accounts and dues"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var parties []string
			var entries []ledger.Entry
			if side == ledger.SideClient {
				parties = a.repo.Clients(ctx)
				entries = a.repo.Sales(ctx)
			} else {
				entries = a.repo.Expenses(ctx)
				parties = mergeParties(a.repo.Settings(ctx).Suppliers, entries)
			}
			if len(parties) == 0 {
				fmt.Println("No accounts.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTRANSACTED\tSETTLED\tDUE")
			for _, p := range parties {
				t := ledger.PartyTotals(entries, p, side)
				fmt.Fprintf(w, "%s\tRs. %s\tRs. %s\tRs. %s\n", p, t.Transacted, t.Settled, t.Due)
			}
			return w.Flush()
		},
	}
}

func (a *app) newStatementCmd() *cobra.Command {
	var side string
	cmd := &cobra.Command{
		Use:   "statement <party>",
		Short: "Full account statement for a client or supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := a.repo.Settings(ctx)

			var st ledger.Statement
			switch ledger.Side(side) {
			case ledger.SideClient:
				st = ledger.AccountStatement(a.repo.Sales(ctx), args[0], ledger.SideClient)
			case ledger.SideSupplier:
				st = ledger.AccountStatement(a.repo.Expenses(ctx), args[0], ledger.SideSupplier)
			default:
				return fmt.Errorf("unknown side %q (client or supplier)", side)
			}

			fmt.Printf("%s\nPhone: %s\n\nAccount Statement: %s\n\n", s.AppName, s.Phone, st.Party)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tDESCRIPTION\tPRODUCT\tAMOUNT")
			for _, e := range st.Entries {
				product := e.Product
				if product == "" {
					product = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\tRs. %s\n", e.Date, statementLabel(e.Kind), product, e.Amount)
			}
			w.Flush()

			transacted, settled := "Total Sales", "Total Cash Received"
			if st.Side == ledger.SideSupplier {
				transacted, settled = "Total Purchased", "Total Cash Paid"
			}
			fmt.Printf("\n%-20s Rs. %s\n", transacted+":", st.Totals.Transacted)
			fmt.Printf("%-20s Rs. %s\n", settled+":", st.Totals.Settled)
			fmt.Printf("%-20s Rs. %s\n", "Remaining Balance:", st.Totals.Due)
			return nil
		},
	}
	cmd.Flags().StringVar(&side, "side", string(ledger.SideClient), "client or supplier")
	return cmd
}

// =============================================================================
// REPORTS & RECEIPTS
// =============================================================================

func (a *app) newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Monthly sales/purchase volumes, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			buckets := ledger.MonthlyReport(a.repo.Sales(ctx), a.repo.Expenses(ctx))
			if len(buckets) == 0 {
				fmt.Println("No data recorded.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tSALES\tPURCHASES\tBALANCE")
			for _, b := range buckets {
				fmt.Fprintf(w, "%s\tRs. %s\tRs. %s\tRs. %s\n",
					b.Label, b.SalesVolume, b.PurchaseVolume, b.SalesVolume.Sub(b.PurchaseVolume))
			}
			return w.Flush()
		},
	}
}

func (a *app) newReceiptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt <id>",
		Short: "Print the receipt/voucher for an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, _, err := a.repo.Find(ctx, args[0])
			if err != nil {
				return err
			}
			r := ledger.BuildReceipt(e, a.repo.Settings(ctx))

			fmt.Printf("%s\nPhone: %s\n\n== %s ==\n\n", r.Business, r.Phone, r.Title)
			fmt.Printf("Date: %s    No: %s\n", r.Date, r.Reference)
			fmt.Printf("%s: %s\n\n", r.PartyLabel, r.Party)
			if r.IsPayment {
				fmt.Println("Details: Cash Payment Received/Paid")
			} else {
				fmt.Printf("Product: %s\n", r.Product)
				fmt.Printf("Qty:     %s %s\n", r.Quantity, r.Unit)
				fmt.Printf("Rate:    Rs. %s\n", r.UnitPrice)
			}
			fmt.Printf("\nAmount:  Rs. %s\n", r.Amount)
			return nil
		},
	}
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

func renderEntryTable(entries []ledger.Entry) {
	if len(entries) == 0 {
		fmt.Println("No records.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tPARTY\tTYPE\tPRODUCT\tQTY\tAMOUNT\tID")
	for _, e := range entries {
		product, qty := e.Product, ""
		if e.Kind.IsPayment() {
			product, qty = "-", "-"
		} else if !e.Quantity.IsZero() {
			qty = e.Quantity.String() + " " + e.Unit
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\tRs. %s\t%s\n",
			e.Date, e.Party, kindLabel(e.Kind), product, qty, e.Amount, e.ID)
	}
	w.Flush()
}

// mergeParties extends the configured roster with any party that already
// has entries, keeping roster order first.
func mergeParties(roster []string, entries []ledger.Entry) []string {
	seen := make(map[string]bool, len(roster))
	out := make([]string, 0, len(roster))
	for _, p := range roster {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, e := range entries {
		if !seen[e.Party] {
			seen[e.Party] = true
			out = append(out, e.Party)
		}
	}
	return out
}

func kindLabel(k ledger.Kind) string {
	switch k {
	case ledger.KindSale:
		return "Credit Sale"
	case ledger.KindPurchase:
		return "Purchase"
	case ledger.KindPaymentIn:
		return "Cash Rec"
	case ledger.KindPaymentOut:
		return "Cash Paid"
	}
	return string(k)
}

func statementLabel(k ledger.Kind) string {
	switch k {
	case ledger.KindSale:
		return "Credit Sale"
	case ledger.KindPurchase:
		return "Inventory Purchase"
	case ledger.KindPaymentIn:
		return "Cash Received"
	case ledger.KindPaymentOut:
		return "Cash Paid"
	}
	return string(k)
}
