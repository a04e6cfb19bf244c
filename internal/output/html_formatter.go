package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/rgehrsitz/irrf/internal/domain"
)

// HTMLFormatter produces a standalone HTML page with both methods side by side.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"rate":   FormatRate,
	"pct":    FormatPercentage,
	"method": func(m domain.Method) string { return strings.ToUpper(methodShortName(m)) },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ComparisonResult
		Details []domain.CalculationDetail
	}{result, result.Ordered()}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
