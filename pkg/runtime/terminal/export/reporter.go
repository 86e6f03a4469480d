package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  24,
		ValueWidth: 12,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(summary domain.RunSummary) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}) string {
			return fmt.Sprintf("| %-*s | %-*v |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
	}

	tmpl := `
Run {{.RunID}}
Started: {{.StartedAt.Format "2006-01-02 15:04:05"}}

{{separator}}
{{formatRow "Reports found" .FilesFound}}
{{formatRow "Flagged" .Flagged}}
{{formatRow "Drafts written" .Drafts}}
{{formatRow "Sent to manual review" .Reviewed}}
{{formatRow "Archived" .Archived}}
{{formatRow "Skipped" .Skipped}}
{{separator}}
`

	t, err := template.New("summary").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, summary)
}
