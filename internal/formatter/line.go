package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/orgoj/logpipe/internal/record"
)

// Default line template and datetime pattern for non-structured drivers.
const (
	DefaultLineFormat   = "[%channel%] [%level_name%] %message% %context% %extra%"
	DefaultLineDatetime = "Y-m-d H:i:s"
)

// Line renders records through a template with literal placeholder
// tokens: %channel%, %level_name%, %message%, %context%, %extra% and
// %datetime%. Unrecognized tokens pass through literally.
type Line struct {
	template string
	layout   string
}

// NewLine creates a line formatter. Empty arguments fall back to the
// package defaults.
func NewLine(template, datetime string) *Line {
	if template == "" {
		template = DefaultLineFormat
	}
	if datetime == "" {
		datetime = DefaultLineDatetime
	}
	return &Line{
		template: template,
		layout:   DateLayout(datetime),
	}
}

// Format substitutes the record's fields into the template.
func (f *Line) Format(rec record.Record) ([]byte, error) {
	replacer := strings.NewReplacer(
		"%channel%", rec.Channel,
		"%level_name%", rec.Level.String(),
		"%message%", rec.Message,
		"%context%", marshalFields(rec.Context),
		"%extra%", marshalFields(rec.Extra),
		"%datetime%", rec.Time.Format(f.layout),
	)
	return []byte(replacer.Replace(f.template)), nil
}

// marshalFields renders a context or extra map as compact JSON. A nil or
// empty map renders as "{}"; values JSON cannot represent fall back to
// their Go formatting.
func marshalFields(fields map[string]any) string {
	if len(fields) == 0 {
		return "{}"
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Sprintf("%v", fields)
	}
	return string(data)
}
