package telemetry

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestNewCollector_Independent(t *testing.T) {
	a := NewCollector("prontuario")
	b := NewCollector("prontuario")

	a.RecordCreated("prontuario")
	a.RecordCreated("prontuario")
	b.RecordCreated("sae")

	if got := testutil.ToFloat64(a.RecordsCreatedTotal.WithLabelValues("prontuario")); got != 2 {
		t.Errorf("expected 2 prontuario records, got %v", got)
	}
	if got := testutil.ToFloat64(b.RecordsCreatedTotal.WithLabelValues("prontuario")); got != 0 {
		t.Errorf("expected collectors to be independent, got %v", got)
	}
}

func TestCollector_ScoreEvaluated(t *testing.T) {
	c := NewCollector("prontuario")
	c.ScoreEvaluated("glasgow", true)
	c.ScoreEvaluated("glasgow", false)
	c.ScoreEvaluated("glasgow", true)

	if got := testutil.ToFloat64(c.ScoresEvaluatedTotal.WithLabelValues("glasgow", "true")); got != 2 {
		t.Errorf("expected 2 defined evaluations, got %v", got)
	}
	if got := testutil.ToFloat64(c.ScoresEvaluatedTotal.WithLabelValues("glasgow", "false")); got != 1 {
		t.Errorf("expected 1 undefined evaluation, got %v", got)
	}
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	c.RecordCreated("prontuario")
	c.ScoreEvaluated("news", true)
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("prontuario")
	c.RecordCreated("alta")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `prontuario_records_created_total{aggregate="alta"} 1`) {
		t.Errorf("expected records counter in exposition, got:\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("expected go runtime metrics in exposition")
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "json", "warn", "prontuario-server")

	logger.Info().Msg("hidden")
	logger.Warn().Str("k", "v").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line at warn level, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON line: %v", err)
	}
	if entry["message"] != "shown" || entry["service"] != "prontuario-server" || entry["k"] != "v" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNewLogger_ECS(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "ecs", "info", "prontuario-server")
	logger.Info().Msg("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line: %v", err)
	}
	if _, ok := entry["ecs.version"]; !ok {
		t.Errorf("expected ecs.version field, got %v", entry)
	}
	if entry["message"] != "hello" {
		t.Errorf("expected message hello, got %v", entry["message"])
	}
}

func TestNewLogger_BadLevelDefaultsToInfo(t *testing.T) {
	logger := NewLogger(io.Discard, "json", "loud", "x")
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("expected info level, got %s", logger.GetLevel())
	}
}
