package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/waritt/goldbooks/internal/books"
	"github.com/waritt/goldbooks/internal/client"
)

var (
	reportMonth int
	reportYear  int
	trialMonth  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Derived accounting reports",
}

var journalReportCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the derived journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		entries, err := c.JournalReport(context.Background(), reportYear, reportMonth)
		if err != nil {
			return err
		}

		fmt.Printf("%-12s %-8s %-24s %14s %14s  %s\n", "DATE", "ACCT", "ACCOUNT", "DEBIT", "CREDIT", "DESCRIPTION")
		totalDebit, totalCredit := decimal.Zero, decimal.Zero
		for _, e := range entries {
			fmt.Printf("%-12s %-8s %-24s %14s %14s  %s\n",
				e.Date, e.AccountNumber, truncate(e.AccountName, 24),
				amount(e.Debit), amount(e.Credit), e.Description)
			totalDebit = totalDebit.Add(e.Debit)
			totalCredit = totalCredit.Add(e.Credit)
		}
		fmt.Printf("%47s %14s %14s\n", "TOTAL", totalDebit.StringFixed(2), totalCredit.StringFixed(2))
		return nil
	},
}

var trialReportCmd = &cobra.Command{
	Use:   "trial",
	Short: "Show the trial balance for a month",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		tb, err := c.TrialBalance(context.Background(), trialMonth)
		if err != nil {
			return err
		}

		fmt.Printf("Trial balance %s\n", tb.Month)
		fmt.Printf("%-8s %-24s %12s %12s %12s %12s %12s %12s\n",
			"ACCT", "ACCOUNT", "OPEN DR", "OPEN CR", "DEBIT", "CREDIT", "CLOSE DR", "CLOSE CR")
		for _, row := range tb.TrialBalance {
			fmt.Printf("%-8s %-24s %12s %12s %12s %12s %12s %12s\n",
				row.AccountNumber, truncate(row.AccountName, 24),
				amount(row.OpeningDebit), amount(row.OpeningCredit),
				amount(row.Debit), amount(row.Credit),
				amount(row.ClosingDebit), amount(row.ClosingCredit))
		}
		return nil
	},
}

var vatSaleReportCmd = &cobra.Command{
	Use:   "vat-sale",
	Short: "Show the output-VAT sale report for a month",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)
		receipts, err := c.VATSaleReport(context.Background(), reportYear, reportMonth)
		if err != nil {
			return err
		}
		printVATReceipts(receipts)
		return nil
	},
}

var vatPurchaseReportCmd = &cobra.Command{
	Use:   "vat-purchase",
	Short: "Show the input-VAT purchase report for a month",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)
		receipts, err := c.VATPurchaseReport(context.Background(), reportYear, reportMonth)
		if err != nil {
			return err
		}
		printVATReceipts(receipts)
		return nil
	},
}

func printVATReceipts(receipts []books.Receipt) {
	fmt.Printf("%-12s %-14s %12s %10s  %-24s %s\n", "DATE", "RECEIPT", "TOTAL", "VAT", "PARTY", "TAX ID")
	for _, r := range receipts {
		party, taxID := r.Vendor, r.VendorTaxID
		if r.Type == books.KindSale {
			party, taxID = r.BuyerName, r.BuyerTaxID
		}
		fmt.Printf("%-12s %-14s %12s %10s  %-24s %s\n",
			r.Date, orDash(r.ReceiptNo), r.GrandTotal, r.VAT, truncate(party, 24), taxID)
	}
}

func amount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}

func init() {
	for _, cmd := range []*cobra.Command{journalReportCmd, vatSaleReportCmd, vatPurchaseReportCmd} {
		cmd.Flags().IntVar(&reportMonth, "month", 0, "Month (1-12)")
		cmd.Flags().IntVar(&reportYear, "year", 0, "Year")
	}
	trialReportCmd.Flags().StringVar(&trialMonth, "month", "", "Month in YYYY-MM format")
	trialReportCmd.MarkFlagRequired("month")

	reportCmd.AddCommand(journalReportCmd, trialReportCmd, vatSaleReportCmd, vatPurchaseReportCmd)
	rootCmd.AddCommand(reportCmd)
}
