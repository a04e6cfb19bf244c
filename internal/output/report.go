package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/irrf/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Formatter renders a comparison result into a byte representation
type Formatter interface {
	Name() string
	Format(result *domain.ComparisonResult) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(result *domain.ComparisonResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *domain.ComparisonResult) ([]byte, error) {
	return f.F(result)
}

var formatters = map[string]Formatter{
	"console":      ConsoleVerboseFormatter{},
	"console-lite": ConsoleFormatter{},
	"csv":          CSVSummarizer{},
	"csv-brackets": CSVBracketFormatter{},
	"json":         JSONFormatter{Pretty: true},
	"html":         HTMLFormatter{},
}

// GetFormatterByName returns the formatter registered under name, or nil
func GetFormatterByName(name string) Formatter {
	return formatters[strings.ToLower(name)]
}

// FormatterNames lists the registered formatter names in alphabetical order
func FormatterNames() []string {
	names := lo.Keys(formatters)
	sort.Strings(names)
	return names
}

// WriteFormatted formats result and writes it to a timestamped file in the working
// directory, returning the file name.
func WriteFormatted(f Formatter, result *domain.ComparisonResult, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("irrf_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// FormatCurrency formats an amount as Brazilian reais ("R$ 1.234,56")
func FormatCurrency(amount decimal.Decimal) string {
	return "R$ " + domain.FormatAmount(amount)
}

// FormatPercentage formats a fraction as a percentage with the given decimals ("7,5%")
func FormatPercentage(fraction decimal.Decimal, places int32) string {
	return domain.FormatNumber(fraction.Mul(decimal.NewFromInt(100)), places) + "%"
}

// FormatRate formats a bracket rate the way the tax table prints it
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate, 1)
}
