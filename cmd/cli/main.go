package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boekhouding-cli",
		Short: "Boekhouding CLI tool",
		Long:  `A command line interface for the transaction classification API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Classification commands
	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "Classification operations",
	}
	classifyCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Classify all unmatched transactions and auto-book confident ones",
		Run: func(cmd *cobra.Command, args []string) {
			runBatch()
		},
	})
	rootCmd.AddCommand(classifyCmd)

	// Transaction commands
	txCmd := &cobra.Command{
		Use:   "transactions",
		Short: "Bank transaction operations",
	}

	var listStatus string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions by status",
		Run: func(cmd *cobra.Command, args []string) {
			listTransactions(listStatus)
		},
	}
	listCmd.Flags().StringVar(&listStatus, "status", "unmatched", "Transaction status filter")
	txCmd.AddCommand(listCmd)

	var confirmMode, confirmAccount, confirmContact string
	confirmCmd := &cobra.Command{
		Use:   "confirm <transaction-id>",
		Short: "Confirm or correct a suggestion and book the transaction",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			confirmTransaction(args[0], confirmMode, confirmAccount, confirmContact)
		},
	}
	confirmCmd.Flags().StringVar(&confirmMode, "mode", "direct", "Booking mode: direct or relation")
	confirmCmd.Flags().StringVar(&confirmAccount, "account", "", "Account ID to book against")
	confirmCmd.Flags().StringVar(&confirmContact, "contact", "", "Contact ID for relation booking")
	txCmd.AddCommand(confirmCmd)

	var settleInvoice string
	settleCmd := &cobra.Command{
		Use:   "settle <transaction-id>",
		Short: "Settle a pending transaction against an open invoice",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			settleTransaction(args[0], settleInvoice)
		},
	}
	settleCmd.Flags().StringVar(&settleInvoice, "invoice", "", "Invoice ID to clear")
	settleCmd.MarkFlagRequired("invoice")
	txCmd.AddCommand(settleCmd)

	rootCmd.AddCommand(txCmd)

	// Rule commands
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Classification rule operations",
	}
	rulesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List rules",
		Run: func(cmd *cobra.Command, args []string) {
			listRules()
		},
	})
	rootCmd.AddCommand(rulesCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	})
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runBatch() {
	body := postJSON("/api/v1/classify/run", nil)

	var report struct {
		Processed          int `json:"processed"`
		AutoBookedDirect   int `json:"auto_booked_direct"`
		AutoBookedRelation int `json:"auto_booked_relation"`
		Suggested          int `json:"suggested"`
		NeedsReview        int `json:"needs_review"`
		Conflicts          int `json:"conflicts"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Processed:            %d\n", report.Processed)
	fmt.Printf("Auto-booked direct:   %d\n", report.AutoBookedDirect)
	fmt.Printf("Auto-booked relation: %d\n", report.AutoBookedRelation)
	fmt.Printf("Suggested:            %d\n", report.Suggested)
	fmt.Printf("Needs review:         %d\n", report.NeedsReview)
	fmt.Printf("Conflicts:            %d\n", report.Conflicts)
}

func listTransactions(status string) {
	body := getJSON("/api/v1/transactions?status=" + status)

	var txs []struct {
		ID           string `json:"id"`
		Date         string `json:"date"`
		Amount       string `json:"amount"`
		Counterparty string `json:"counterparty"`
		Status       string `json:"status"`
		Confidence   *int   `json:"confidence"`
	}
	if err := json.Unmarshal(body, &txs); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, tx := range txs {
		confidence := "-"
		if tx.Confidence != nil {
			confidence = fmt.Sprintf("%d", *tx.Confidence)
		}
		fmt.Printf("%s  %10s  %-30s  %-10s  %s\n", tx.ID, tx.Amount, tx.Counterparty, tx.Status, confidence)
	}
}

func confirmTransaction(id, mode, accountID, contactID string) {
	payload := map[string]string{
		"mode":       mode,
		"account_id": accountID,
	}
	if contactID != "" {
		payload["contact_id"] = contactID
	}

	body := postJSON("/api/v1/transactions/"+id+"/confirm", payload)
	fmt.Printf("Booked.\n%s\n", string(body))
}

func settleTransaction(id, invoiceID string) {
	body := postJSON("/api/v1/transactions/"+id+"/settle", map[string]string{"invoice_id": invoiceID})
	fmt.Printf("Settled.\n%s\n", string(body))
}

func listRules() {
	body := getJSON("/api/v1/rules")

	var rules []struct {
		Keyword    string `json:"keyword"`
		Priority   int    `json:"priority"`
		System     bool   `json:"system"`
		UsageCount int64  `json:"usage_count"`
	}
	if err := json.Unmarshal(body, &rules); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, r := range rules {
		kind := "learned"
		if r.System {
			kind = "system"
		}
		fmt.Printf("%-30s  %-8s  priority=%-4d  used=%d\n", r.Keyword, kind, r.Priority, r.UsageCount)
	}
}

func checkConsistency() {
	body := getJSON("/api/v1/ledger/consistency")

	var result struct {
		TotalDebit  string `json:"total_debit"`
		TotalCredit string `json:"total_credit"`
		Consistent  bool   `json:"consistent"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if result.Consistent {
		fmt.Printf("Consistency check PASSED (debit %s = credit %s)\n", result.TotalDebit, result.TotalCredit)
		return
	}

	fmt.Printf("Consistency check FAILED (debit %s != credit %s)\n", result.TotalDebit, result.TotalCredit)
	os.Exit(1)
}

func getJSON(path string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func postJSON(path string, payload any) []byte {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader([]byte(`{}`))
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", reqBody)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}
