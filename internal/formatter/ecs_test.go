package formatter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/orgoj/logpipe/internal/record"
)

func ecsFormatAndDecode(t *testing.T, f *ECS, rec record.Record) map[string]any {
	t.Helper()
	out, err := f.Format(rec)
	if err != nil {
		t.Fatalf("Format() returned error: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	return doc
}

func TestECSFormat_ReservedFields(t *testing.T) {
	f := NewECS([]string{"svcA"})

	rec := record.Record{
		Channel: "orders",
		Level:   record.DEBUG,
		Time:    time.Date(2024, 3, 7, 9, 5, 2, 0, time.UTC),
		Message: "created",
		Context: map[string]any{"order_id": "42"},
	}
	doc := ecsFormatAndDecode(t, f, rec)

	if got := doc["@timestamp"]; got != "2024-03-07T09:05:02Z" {
		t.Errorf("@timestamp = %v", got)
	}
	if got := doc["log.level"]; got != "debug" {
		t.Errorf("log.level = %v, expected debug", got)
	}
	if got := doc["log.logger"]; got != "orders" {
		t.Errorf("log.logger = %v", got)
	}
	if got := doc["message"]; got != "created" {
		t.Errorf("message = %v", got)
	}
	if got := doc["ecs.version"]; got != ECSVersion {
		t.Errorf("ecs.version = %v", got)
	}
	if got := doc["order_id"]; got != "42" {
		t.Errorf("context field order_id = %v", got)
	}

	tags, ok := doc["tags"].([]any)
	if !ok || len(tags) != 1 || tags[0] != "svcA" {
		t.Errorf("tags = %v", doc["tags"])
	}
}

func TestECSFormat_NoTagsOmitsField(t *testing.T) {
	f := NewECS(nil)
	doc := ecsFormatAndDecode(t, f, record.New("app", record.INFO, "m", nil))

	if _, ok := doc["tags"]; ok {
		t.Error("tags field must be omitted when no tags are configured")
	}
}

func TestECSFormat_ReservedFieldsWinOverContext(t *testing.T) {
	f := NewECS(nil)

	rec := record.New("app", record.ERROR, "real message", map[string]any{
		"log.level": "spoofed",
	})
	doc := ecsFormatAndDecode(t, f, rec)

	if got := doc["log.level"]; got != "error" {
		t.Errorf("log.level = %v, reserved field must win over context", got)
	}
}
