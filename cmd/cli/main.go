package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL    string
	timeout    time.Duration
	userID     string
	household  string
	sharedView bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "caixinha-cli",
		Short: "Caixinha CLI tool",
		Long:  `A command line interface for interacting with the Caixinha ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Caixinha API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "Acting user id (required)")
	rootCmd.PersistentFlags().StringVar(&household, "household", "", "Household id for shared view")
	rootCmd.PersistentFlags().BoolVar(&sharedView, "shared", false, "Operate on the shared household view")

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Replay transaction history and heal balance drift",
		Run: func(cmd *cobra.Command, args []string) {
			runReconciliation()
		},
	}

	var year, month int
	forecastCmd := &cobra.Command{
		Use:   "forecast",
		Short: "Show the carry view of one month",
		Run: func(cmd *cobra.Command, args []string) {
			showForecast(year, month)
		},
	}
	forecastCmd.Flags().IntVar(&year, "year", 0, "Forecast year (defaults to current)")
	forecastCmd.Flags().IntVar(&month, "month", 0, "Forecast month 1-12 (defaults to current)")

	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(forecastCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRequest(method, path string) (*http.Request, error) {
	if userID == "" {
		return nil, fmt.Errorf("--user is required")
	}

	req, err := http.NewRequest(method, baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("X-User-ID", userID)
	if household != "" {
		req.Header.Set("X-Household-ID", household)
	}
	if sharedView {
		req.Header.Set("X-Shared-View", "true")
	}

	return req, nil
}

func runReconciliation() {
	req, err := newRequest(http.MethodPost, "/api/v1/reconciliation")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Reconciliation FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var report struct {
		Results []struct {
			ID         string `json:"id"`
			Kind       string `json:"kind"`
			Recorded   string `json:"recorded"`
			Calculated string `json:"calculated"`
			Difference string `json:"difference"`
			Adjusted   bool   `json:"adjusted"`
		} `json:"results"`
		Adjusted int `json:"adjusted"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Reconciliation finished: %d checked, %d adjusted\n", len(report.Results), report.Adjusted)
	for _, r := range report.Results {
		status := "ok"
		if r.Adjusted {
			status = fmt.Sprintf("adjusted %s -> %s (drift %s)", r.Recorded, r.Calculated, r.Difference)
		}
		fmt.Printf("  %s %s: %s\n", r.Kind, r.ID, status)
	}
}

func showForecast(year, month int) {
	path := "/api/v1/forecast"
	if year != 0 || month != 0 {
		path = fmt.Sprintf("%s?year=%d&month=%d", path, year, month)
	}

	req, err := newRequest(http.MethodGet, path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Forecast request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var forecast struct {
		Year            int    `json:"year"`
		Month           int    `json:"month"`
		CarryIn         string `json:"carry_in"`
		CarryOut        string `json:"carry_out"`
		PaidIncome      string `json:"paid_income"`
		PendingIncome   string `json:"pending_income"`
		PaidExpenses    string `json:"paid_expenses"`
		PendingExpenses string `json:"pending_expenses"`
		Net             string `json:"net"`
	}
	if err := json.Unmarshal(body, &forecast); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Forecast %d-%02d\n", forecast.Year, forecast.Month)
	fmt.Printf("  Carry in:         %s\n", forecast.CarryIn)
	fmt.Printf("  Paid income:      %s\n", forecast.PaidIncome)
	fmt.Printf("  Pending income:   %s\n", forecast.PendingIncome)
	fmt.Printf("  Paid expenses:    %s\n", forecast.PaidExpenses)
	fmt.Printf("  Pending expenses: %s\n", forecast.PendingExpenses)
	fmt.Printf("  Net:              %s\n", forecast.Net)
	fmt.Printf("  Carry out:        %s\n", forecast.CarryOut)
}
