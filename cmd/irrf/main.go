package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/irrf/internal/calculation"
	"github.com/rgehrsitz/irrf/internal/config"
	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/rgehrsitz/irrf/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "irrf %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" && cmd.Flags().Changed("build-info") {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "irrf",
		Short: "IRRF 2026 withholding simulator",
		Long: `Simulates the 2026 Brazilian monthly income tax withholding (IRRF) on salary
under the full and simplified deduction methods and recommends the cheaper one.`,
		SilenceUsage: true,
	}

	ver := versionCmd()
	ver.Flags().Bool("build-info", false, "Also print Go build information")

	root.AddCommand(calculateCmd(), breakEvenCmd(), validateCmd(), rulesCmd(), ver)
	return root
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Compare the full and simplified withholding methods",
		Long: `Compare the full and simplified withholding methods for one monthly salary.

Examples:
  irrf calculate taxpayer.yaml
  irrf calculate --salary 8000 --inss 800 --dependents 2
  irrf calculate taxpayer.yaml --salary 9500 --format json
  irrf calculate --salary 2000 --retiree --rules rules2026.yaml
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
			} else if !cmd.Flags().Changed("salary") {
				return fmt.Errorf("provide an input file or --salary")
			}

			if err := applyFlagOverrides(cmd, input); err != nil {
				return err
			}
			if err := parser.ValidateInput(input); err != nil {
				return fmt.Errorf("input validation failed: %w", err)
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
			result := engine.Compare(*input)

			outputFormat, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(outputFormat)
			if f == nil {
				return fmt.Errorf("unsupported format %q (available: %v)", outputFormat, output.FormatterNames())
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				filename, err := output.WriteFormatted(f, &result, fileExtension(f.Name()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(&result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	addInputFlags(cmd)
	cmd.Flags().String("salary", "", "Gross monthly salary (overrides the input file)")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, json, csv, csv-brackets, html)")
	cmd.Flags().String("rules", "", "Path to a rules file replacing the 2026 table")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

// addInputFlags registers the deduction profile flags shared by calculate and breakeven
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().Int("dependents", 0, "Number of dependents")
	cmd.Flags().String("alimony", "", "Court-ordered alimony paid this month")
	cmd.Flags().String("inss", "", "Official social security contribution (INSS)")
	cmd.Flags().String("other", "", "Other legal deductions (e.g. private pension)")
	cmd.Flags().Bool("retiree", false, "Retiree aged 65 or older")
}

// applyFlagOverrides copies every explicitly set flag onto input
func applyFlagOverrides(cmd *cobra.Command, input *domain.TaxpayerInput) error {
	amounts := []struct {
		flag   string
		target *decimal.Decimal
	}{
		{"salary", &input.GrossSalary},
		{"alimony", &input.Alimony},
		{"inss", &input.SocialSecurity},
		{"other", &input.OtherDeductions},
	}
	for _, a := range amounts {
		if !cmd.Flags().Changed(a.flag) {
			continue
		}
		raw, _ := cmd.Flags().GetString(a.flag)
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid --%s value %q: %w", a.flag, raw, err)
		}
		*a.target = value
	}

	if cmd.Flags().Changed("dependents") {
		input.Dependents, _ = cmd.Flags().GetInt("dependents")
	}
	if cmd.Flags().Changed("retiree") {
		input.IsRetiree65Plus, _ = cmd.Flags().GetBool("retiree")
	}
	return nil
}

func fileExtension(format string) string {
	switch format {
	case "csv", "csv-brackets":
		return "csv"
	case "json":
		return "json"
	case "html":
		return "html"
	default:
		return "txt"
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a taxpayer input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", args[0])
			return nil
		},
	}
}

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the active tax table and constants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rulesFile, _ := cmd.Flags().GetString("rules")
			rules, err := config.NewInputParser().LoadRules(rulesFile)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), output.FormatRules(rules))
			return err
		},
	}
	cmd.Flags().String("rules", "", "Path to a rules file replacing the 2026 table")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
