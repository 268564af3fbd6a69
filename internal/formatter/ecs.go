package formatter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/orgoj/logpipe/internal/record"
)

// ECSVersion is the Elastic Common Schema version stamped on every
// document.
const ECSVersion = "1.6.0"

// ECS serializes records as Elastic Common Schema JSON documents, one
// per line. The tag set is captured at build time and attached to every
// document.
type ECS struct {
	tags []string
}

// NewECS creates an ECS formatter bound to the given static tags.
func NewECS(tags []string) *ECS {
	return &ECS{tags: tags}
}

// Format builds the ECS document: enriched context fields first, then
// the reserved ECS fields, which always win on key collision. The
// collision guard has already moved any caller-supplied "message"
// context field aside before the record reaches the formatter.
func (f *ECS) Format(rec record.Record) ([]byte, error) {
	doc := make(map[string]any, len(rec.Context)+len(rec.Extra)+6)
	for k, v := range rec.Context {
		doc[k] = v
	}
	for k, v := range rec.Extra {
		doc[k] = v
	}

	doc["@timestamp"] = rec.Time.UTC().Format(time.RFC3339Nano)
	doc["ecs.version"] = ECSVersion
	doc["log.level"] = strings.ToLower(rec.Level.String())
	doc["log.logger"] = rec.Channel
	doc["message"] = rec.Message
	if len(f.tags) > 0 {
		doc["tags"] = f.tags
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ECS document: %w", err)
	}
	return data, nil
}
