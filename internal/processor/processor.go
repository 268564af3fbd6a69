// Package processor holds the enrichment processors applied to a log
// record before it reaches its handler chain.
package processor

import "github.com/orgoj/logpipe/internal/record"

// Reserved context keys.
const (
	fieldMessage       = "message"
	fieldCustomMessage = "custom_message"
	fieldService       = "service"
)

// Processor transforms a record's context. Implementations must return a
// new record and leave the input untouched; processors registered on a
// pipeline run in registration order, each seeing the previous
// processor's output.
type Processor interface {
	Process(rec record.Record) record.Record
}

// CollisionGuard renames a caller-supplied "message" context field to
// "custom_message" so it cannot clobber the record's own message when the
// formatter renders both under the same field conventions.
type CollisionGuard struct{}

// Process moves context["message"] to context["custom_message"],
// overwriting any prior value there. Records without a "message" context
// key pass through with their context unchanged.
func (CollisionGuard) Process(rec record.Record) record.Record {
	value, ok := rec.Context[fieldMessage]
	if !ok {
		return rec
	}
	ctx := rec.CopyContext()
	ctx[fieldCustomMessage] = value
	delete(ctx, fieldMessage)
	return rec.WithContext(ctx)
}

// ServiceMetadata is the static service identity captured from
// configuration at build time.
type ServiceMetadata struct {
	Name        string
	Version     string
	Environment string
	Type        string
}

// Empty reports whether no identity field is set.
func (m ServiceMetadata) Empty() bool {
	return m.Name == "" && m.Version == "" && m.Environment == "" && m.Type == ""
}

// ServiceInjector attaches the captured service identity to every
// record's context under a "service" sub-mapping.
type ServiceInjector struct {
	Metadata ServiceMetadata
}

// Process sets context.service.<field> for each non-empty captured field,
// overwriting existing values under those keys. Fields empty in the
// captured metadata are left untouched in the context, not cleared. An
// existing context.service value that is not a mapping is replaced.
func (p ServiceInjector) Process(rec record.Record) record.Record {
	ctx := rec.CopyContext()

	service := make(map[string]any)
	if prev, ok := ctx[fieldService].(map[string]any); ok {
		for k, v := range prev {
			service[k] = v
		}
	}

	if p.Metadata.Name != "" {
		service["name"] = p.Metadata.Name
	}
	if p.Metadata.Version != "" {
		service["version"] = p.Metadata.Version
	}
	if p.Metadata.Environment != "" {
		service["environment"] = p.Metadata.Environment
	}
	if p.Metadata.Type != "" {
		service["type"] = p.Metadata.Type
	}

	ctx[fieldService] = service
	return rec.WithContext(ctx)
}
