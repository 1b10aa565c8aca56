package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mulasense/finance-core/internal/ecocash"
)

func newEcoCashClient() *ecocash.Client {
	return ecocash.NewClient(ecocash.Config{
		APIKey:  viper.GetString("ecocash.api_key"),
		BaseURL: viper.GetString("ecocash.base_url"),
		Sandbox: viper.GetBool("ecocash.sandbox"),
	}, log)
}

func payCmd() *cobra.Command {
	var phone, amount, reason, currency, reference string

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Request an EcoCash customer-to-business payment",
		Example: `  mulasense pay --phone 0771234567 --amount 10 --reason "Invoice 42"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			if viper.GetString("ecocash.api_key") == "" {
				return fmt.Errorf("ecocash.api_key is not configured (set MULASENSE_ECOCASH_API_KEY)")
			}

			result, err := newEcoCashClient().Pay(cmd.Context(), ecocash.PaymentRequest{
				CustomerMSISDN:  phone,
				Amount:          value,
				Reason:          reason,
				Currency:        currency,
				SourceReference: reference,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("payment rejected with status %d", result.StatusCode)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "customer EcoCash number (07..., 263..., +263...)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to collect")
	cmd.Flags().StringVar(&reason, "reason", "Payment", "payment reason shown to the customer")
	cmd.Flags().StringVar(&currency, "currency", ecocash.DefaultCurrency, "currency code")
	cmd.Flags().StringVar(&reference, "reference", "", "source reference (default: a new UUID)")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
