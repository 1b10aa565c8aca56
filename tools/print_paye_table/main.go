package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mulasense/finance-core/internal/calculation"
	"github.com/mulasense/finance-core/internal/config"
	"github.com/mulasense/finance-core/internal/output"
)

type tableOptions struct {
	rulesFile string
	from      float64
	to        float64
	step      float64
	salary    float64
}

func newCommand() *cobra.Command {
	var opts tableOptions

	cmd := &cobra.Command{
		Use:   "print_paye_table",
		Short: "Print PAYE over a salary grid, or one salary bracket by bracket",
		Example: `  go run ./tools/print_paye_table --from 0 --to 3000 --step 500
  go run ./tools/print_paye_table --salary 1100`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc, err := payeCalculator(opts.rulesFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("salary") {
				return printBrackets(cmd.OutOrStdout(), pc, opts.salary)
			}
			return printGrid(cmd.OutOrStdout(), pc, opts)
		},
	}
	cmd.Flags().StringVar(&opts.rulesFile, "rules", "", "tax rules override file")
	cmd.Flags().Float64Var(&opts.from, "from", 0, "lowest gross salary")
	cmd.Flags().Float64Var(&opts.to, "to", 5000, "highest gross salary")
	cmd.Flags().Float64Var(&opts.step, "step", 250, "salary step")
	cmd.Flags().Float64Var(&opts.salary, "salary", 0, "show the per-bracket breakdown for this gross salary")
	return cmd
}

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func payeCalculator(rulesFile string) (*calculation.PAYECalculator, error) {
	if rulesFile == "" {
		return calculation.NewPAYECalculator2025(), nil
	}
	rules, err := config.NewInputParser().LoadTaxRules(rulesFile)
	if err != nil {
		return nil, err
	}
	return calculation.NewPAYECalculator(*rules), nil
}

func printGrid(w io.Writer, pc *calculation.PAYECalculator, opts tableOptions) error {
	if opts.step <= 0 {
		return errors.New("step must be positive")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Gross\tNSSA\tTaxable\tPAYE\tAIDS Levy\tNet Pay\tEffective\t")
	for gross := opts.from; gross <= opts.to; gross += opts.step {
		r := pc.Calculate(gross)
		effective := 0.0
		if gross > 0 {
			effective = r.TotalTax() / gross * 100
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			output.FormatCurrency(r.Gross), output.FormatCurrency(r.NSSA), output.FormatCurrency(r.TaxableIncome),
			output.FormatCurrency(r.PAYE), output.FormatCurrency(r.AIDSLevy), output.FormatCurrency(r.NetPay),
			output.FormatPercentage(effective))
	}
	return tw.Flush()
}

func printBrackets(w io.Writer, pc *calculation.PAYECalculator, gross float64) error {
	r := pc.Calculate(gross)
	fmt.Fprintf(w, "Gross %s, NSSA %s, taxable %s\n",
		output.FormatCurrency(r.Gross), output.FormatCurrency(r.NSSA), output.FormatCurrency(r.TaxableIncome))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Band\tRate\tIncome\tTax\t")
	for _, c := range pc.Contributions(r.TaxableIncome) {
		upper := output.FormatCurrency(c.Bracket.Max)
		if math.IsInf(c.Bracket.Max, 1) {
			upper = "and above"
		}
		marker := ""
		if c.Marginal {
			marker = " *"
		}
		fmt.Fprintf(tw, "%s - %s\t%s\t%s\t%s%s\t\n",
			output.FormatCurrency(c.Bracket.Min), upper, output.FormatRate(c.Rate),
			output.FormatCurrency(c.Income), output.FormatCurrency(c.Tax), marker)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "PAYE %s + AIDS levy %s = %s\n",
		output.FormatCurrency(r.PAYE), output.FormatCurrency(r.AIDSLevy), output.FormatCurrency(r.TotalTax()))
	return nil
}
