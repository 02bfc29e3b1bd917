package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/accountledger/internal/adapter/http/dto"
	"github.com/iho/accountledger/internal/domain"
	"github.com/iho/accountledger/internal/infrastructure/postgres"
)

type options struct {
	baseURL string
	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "accountledger-cli",
		Short:         "AccountLedger CLI tool",
		Long:          `A command line interface for interacting with the AccountLedger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the AccountLedger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		transactionCmd(opts),
		statementCmd(opts),
		ledgerCmd(opts),
		migrateCmd(),
	)

	return rootCmd
}

func transactionCmd(opts *options) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "transaction <account-id> <c|d> <amount>",
		Short: "Credit or debit an account (amount in minor units)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("amount must be an integer: %w", err)
			}

			body, err := json.Marshal(map[string]any{
				"valor":     amount,
				"tipo":      args[1],
				"descricao": description,
			})
			if err != nil {
				return err
			}

			var resp dto.BalanceResponse
			if err := opts.do(http.MethodPost, "/clientes/"+args[0]+"/transacoes", body, &resp); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Balance: %s\nLimit:   %s\n",
				formatMoney(resp.Balance), formatMoney(resp.Limit))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "cli", "Transaction description (1 to 10 characters)")

	return cmd
}

func statementCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "statement <account-id>",
		Short: "Show balance and recent transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.StatementResponse
			if err := opts.do(http.MethodGet, "/clientes/"+args[0]+"/extrato", nil, &resp); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, resp)
			}

			fmt.Fprintf(out, "Balance: %s  Limit: %s  At: %s\n",
				formatMoney(resp.Balance.Total),
				formatMoney(resp.Balance.Limit),
				resp.Balance.GeneratedAt.Format(time.RFC3339))

			for _, tx := range resp.Transactions {
				fmt.Fprintf(out, "%s  %s  %12s  %s\n",
					tx.OccurredAt.Format(time.RFC3339), tx.Kind, formatMoney(tx.Amount), tx.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw statement")

	return cmd
}

func ledgerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ConsistencyResponse
			err := opts.do(http.MethodGet, "/api/v1/ledger/consistency", nil, &resp)

			var statusErr *statusError
			if errors.As(err, &statusErr) && statusErr.code == http.StatusConflict {
				if jsonErr := json.Unmarshal(statusErr.body, &resp); jsonErr == nil {
					for _, d := range resp.Drift {
						fmt.Fprintf(cmd.OutOrStdout(), "account %s: recorded %s, calculated %s\n",
							d.AccountID, formatMoney(d.RecordedBalance), formatMoney(d.CalculatedBalance))
					}
				}
				return errors.New("consistency check FAILED")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Consistency check PASSED\nStatus: %s\n", resp.Status)
			return nil
		},
	})

	return cmd
}

func migrateCmd() *cobra.Command {
	var databaseURL, path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL URL (default $DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&path, "path", "internal/infrastructure/postgres/migrations", "Migrations directory")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if databaseURL == "" {
					return errors.New("--database-url or DATABASE_URL is required")
				}
				return postgres.RunMigrations(databaseURL, path)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if databaseURL == "" {
					return errors.New("--database-url or DATABASE_URL is required")
				}
				return postgres.RunMigrationsDown(databaseURL, path)
			},
		},
	)

	return cmd
}

// statusError is a non-2xx API response.
type statusError struct {
	code int
	body []byte
}

func (e *statusError) Error() string {
	var apiErr dto.ErrorResponse
	if err := json.Unmarshal(e.body, &apiErr); err == nil && apiErr.Error != "" {
		if apiErr.Message != "" {
			return fmt.Sprintf("request failed (status %d): %s: %s", e.code, apiErr.Error, apiErr.Message)
		}
		return fmt.Sprintf("request failed (status %d): %s", e.code, apiErr.Error)
	}
	return fmt.Sprintf("request failed (status %d): %s", e.code, bytes.TrimSpace(e.body))
}

func (o *options) do(method, path string, body []byte, out any) error {
	client := &http.Client{Timeout: o.timeout}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, o.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{code: resp.StatusCode, body: respBody}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// formatMoney renders minor units as major units, e.g. -1000 as -10.00.
func formatMoney(minor int64) string {
	return domain.Money(minor).Decimal().StringFixed(2)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
