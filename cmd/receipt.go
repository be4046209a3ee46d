package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waritt/goldbooks/internal/books"
	"github.com/waritt/goldbooks/internal/client"
)

var (
	receiptType    string
	receiptMonth   int
	receiptYear    int
	addReceiptNo   string
	addDate        string
	addGrandTotal  string
	addVAT         string
	addVendor      string
	addBuyer       string
	addCategory    string
	addNotes       string
	addPaymentType string
	addKind        string
)

var receiptCmd = &cobra.Command{
	Use:   "receipt",
	Short: "Manage the receipt log",
}

var receiptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List receipts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		receipts, err := c.ListReceipts(context.Background(), books.ReceiptType(receiptType), receiptYear, receiptMonth)
		if err != nil {
			return err
		}

		fmt.Printf("%-14s %-12s %-10s %12s %10s  %s\n", "KEY", "DATE", "TYPE", "TOTAL", "VAT", "PARTY")
		for _, r := range receipts {
			party := r.Vendor
			if r.Type == books.KindSale {
				party = r.BuyerName
			}
			fmt.Printf("%-14s %-12s %-10s %12s %10s  %s\n",
				truncate(r.Key(), 14), r.Date, orDash(string(r.Type)), r.GrandTotal, r.VAT, party)
		}
		return nil
	},
}

var receiptAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a receipt to the log",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		receipt := &books.Receipt{
			ReceiptNo:   addReceiptNo,
			Date:        addDate,
			GrandTotal:  addGrandTotal,
			VAT:         addVAT,
			Vendor:      addVendor,
			BuyerName:   addBuyer,
			Category:    addCategory,
			Notes:       addNotes,
			PaymentType: books.PaymentType(addPaymentType),
			Type:        books.ReceiptType(addKind),
		}

		created, err := c.CreateReceipt(context.Background(), receipt)
		if err != nil {
			return err
		}
		fmt.Printf("created receipt %s (%s, %s)\n", created.Key(), created.Type, created.GrandTotal)
		return nil
	},
}

var receiptRmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Delete a receipt by key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)
		if err := c.DeleteReceipt(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted receipt %s\n", args[0])
		return nil
	},
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	receiptListCmd.Flags().StringVar(&receiptType, "type", "", "Filter by type (sale|purchase|capital)")
	receiptListCmd.Flags().IntVar(&receiptMonth, "month", 0, "Filter by month (1-12)")
	receiptListCmd.Flags().IntVar(&receiptYear, "year", 0, "Filter by year")

	receiptAddCmd.Flags().StringVar(&addReceiptNo, "no", "", "Receipt number")
	receiptAddCmd.Flags().StringVar(&addDate, "date", "", "Receipt date (YYYY-MM-DD)")
	receiptAddCmd.Flags().StringVar(&addGrandTotal, "total", "", "Grand total")
	receiptAddCmd.Flags().StringVar(&addVAT, "vat", "0", "VAT amount")
	receiptAddCmd.Flags().StringVar(&addVendor, "vendor", "", "Vendor name")
	receiptAddCmd.Flags().StringVar(&addBuyer, "buyer", "", "Buyer name")
	receiptAddCmd.Flags().StringVar(&addCategory, "category", "", "Product category")
	receiptAddCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form notes")
	receiptAddCmd.Flags().StringVar(&addPaymentType, "pay", "cash", "Payment type (cash|transfer)")
	receiptAddCmd.Flags().StringVar(&addKind, "kind", "", "Transaction kind (sale|purchase|capital)")
	receiptAddCmd.MarkFlagRequired("date")
	receiptAddCmd.MarkFlagRequired("total")

	receiptCmd.AddCommand(receiptListCmd, receiptAddCmd, receiptRmCmd)
	rootCmd.AddCommand(receiptCmd)
}
