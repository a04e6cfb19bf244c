package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/irrf/internal/breakeven"
	"github.com/rgehrsitz/irrf/internal/calculation"
	"github.com/rgehrsitz/irrf/internal/config"
	"github.com/rgehrsitz/irrf/internal/domain"
)

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven [input-file]",
		Short: "Find the salary where the simplified method wins, or the gross for a target take-home",
		Long: `Search gross salaries for a fixed deduction profile.

The crossover search finds the lowest salary at which the simplified method withholds
less than the full method. With --net, it also finds the lowest gross salary whose
pay after withholding reaches the given amount.

Examples:
  irrf breakeven --inss 500 --dependents 1
  irrf breakeven taxpayer.yaml --net 8000 --format json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()

			input := &domain.TaxpayerInput{}
			if len(args) == 1 {
				loaded, err := parser.LoadFromFile(args[0])
				if err != nil {
					return err
				}
				input = loaded
			}
			if err := applyFlagOverrides(cmd, input); err != nil {
				return err
			}
			if err := parser.ValidateInput(input); err != nil {
				return fmt.Errorf("input validation failed: %w", err)
			}

			var targetNet *decimal.Decimal
			if cmd.Flags().Changed("net") {
				raw, _ := cmd.Flags().GetString("net")
				value, err := decimal.NewFromString(raw)
				if err != nil {
					return fmt.Errorf("invalid --net value %q: %w", raw, err)
				}
				targetNet = &value
			}

			rulesFile, _ := cmd.Flags().GetString("rules")
			rules, err := parser.LoadRules(rulesFile)
			if err != nil {
				return err
			}

			engine := calculation.NewCalculationEngineWithRules(rules)
			debugMode, _ := cmd.Flags().GetBool("debug")
			if debugMode {
				engine.SetLogger(newDebugLogger(cmd.ErrOrStderr()))
			}
			engine.Debug = debugMode

			summary, err := breakeven.NewDefaultSolver(engine).SolveAll(cmd.Context(), *input, targetNet)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "json":
				out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatSummary(summary)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			case "table":
				fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatSummary(summary))
			default:
				return fmt.Errorf("unsupported format %q (available: table, json)", format)
			}
			return nil
		},
	}

	addInputFlags(cmd)
	cmd.Flags().String("net", "", "Target monthly pay after withholding")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().String("rules", "", "Path to a rules file replacing the 2026 table")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}
