package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/appealworks/giftmatch/internal/cli"
	"github.com/appealworks/giftmatch/internal/config"
	"github.com/appealworks/giftmatch/internal/csvio"
	"github.com/appealworks/giftmatch/internal/engine"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile a mailing list against received payments",
		Long: `Reconcile a campaign mailing list against received payment transactions.

Transactions are first joined to contacts by identifier. With --fuzzy,
leftovers are scored against every contact by combined name and address
edit distance, and the best candidate below the threshold is linked.

Examples:
  # Exact matching only
  giftmatch reconcile --contacts contacts.csv --transactions transactions.csv

  # Fuzzy fallback with the suggestion table for manual review
  giftmatch reconcile --fuzzy --suggestions \
    --contacts contacts.csv --transactions transactions.csv`,
		RunE: runReconcile,
	}

	cmd.Flags().String("contacts", "contacts.csv", "campaign contact list")
	cmd.Flags().String("transactions", "transactions.csv", "received payments export")
	cmd.Flags().Bool("fuzzy", false, "fuzzy-match transactions with no identifier match")
	cmd.Flags().Float64("threshold", 5, "maximum accepted combined edit distance")
	cmd.Flags().Bool("suggestions", false, "include the fuzzy candidate suggestions table")
	cmd.Flags().Float64("cost-per-contact", 3, "campaign cost per mailed contact")

	_ = viper.BindPFlag(config.KeyEnableFuzzy, cmd.Flags().Lookup("fuzzy"))
	_ = viper.BindPFlag(config.KeyFuzzyThreshold, cmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag(config.KeySuggestions, cmd.Flags().Lookup("suggestions"))
	_ = viper.BindPFlag(config.KeyCostPerContact, cmd.Flags().Lookup("cost-per-contact"))

	return cmd
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromViper()
	if err != nil {
		return err
	}

	contactsPath, _ := cmd.Flags().GetString("contacts")
	transactionsPath, _ := cmd.Flags().GetString("transactions")
	contactsPath = config.ExpandPath(contactsPath)
	transactionsPath = config.ExpandPath(transactionsPath)

	contacts, loadWarnings, err := csvio.ReadContacts(contactsPath)
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}
	txns, err := csvio.ReadTransactions(transactionsPath)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	eng := engine.New(cfg)
	eng.SetProgress(cmd.ErrOrStderr())

	res, err := eng.Run(cmd.Context(), contacts, txns)
	if err != nil {
		return err
	}
	res.Warnings = append(loadWarnings, res.Warnings...)

	slog.Info("Reconciliation complete",
		"reconciled_records", len(res.Reconciled),
		"unmatched", len(res.Unmatched),
		"warnings", len(res.Warnings))

	return cli.RenderReport(cmd.OutOrStdout(), res)
}
