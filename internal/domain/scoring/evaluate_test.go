package scoring

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in    string
		set   bool
		value float64
	}{
		{`4`, true, 4},
		{`37.8`, true, 37.8},
		{`"12"`, true, 12},
		{`"37,8"`, true, 37.8},
		{`" 5 "`, true, 5},
		{`null`, false, 0},
		{`""`, false, 0},
		{`"abc"`, false, 0},
		{`true`, false, 0},
		{`{}`, false, 0},
	}
	for _, tt := range tests {
		var n Number
		if err := json.Unmarshal([]byte(tt.in), &n); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.in, err)
		}
		v, ok := n.Value()
		if ok != tt.set || v != tt.value {
			t.Errorf("%s: got (%v, %v), want (%v, %v)", tt.in, v, ok, tt.value, tt.set)
		}
	}
}

func TestNumber_RemembersInvalidInput(t *testing.T) {
	tests := []struct {
		in      string
		invalid bool
		raw     string
	}{
		{`"abc"`, true, "abc"},
		{`" noventa "`, true, "noventa"},
		{`true`, true, "true"},
		{`{}`, true, "{}"},
		{`""`, false, ""},
		{`"  "`, false, ""},
		{`null`, false, ""},
		{`"37,8"`, false, ""},
		{`98`, false, ""},
	}
	for _, tt := range tests {
		var n Number
		if err := json.Unmarshal([]byte(tt.in), &n); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.in, err)
		}
		raw, bad := n.Invalid()
		if bad != tt.invalid || raw != tt.raw {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", tt.in, raw, bad, tt.raw, tt.invalid)
		}
		if bad && n.IsSet() {
			t.Errorf("%s: invalid input must stay unset", tt.in)
		}
	}
}

func TestNumber_MarshalJSON(t *testing.T) {
	data, _ := json.Marshal(struct {
		A Number `json:"a"`
		B Number `json:"b"`
	}{A: N(36.5)})
	if string(data) != `{"a":36.5,"b":null}` {
		t.Errorf("unexpected JSON %s", data)
	}
}

func TestEvaluate_Glasgow(t *testing.T) {
	res, err := Evaluate(ScaleGlasgow, json.RawMessage(`{"ocular":"3","verbal":4,"motora":6}`))
	if got := mustScore(t, res, err); got != 13 {
		t.Errorf("expected 13, got %d", got)
	}
	if res.Label != "Leve" {
		t.Errorf("expected Leve, got %q", res.Label)
	}
}

func TestEvaluate_NonNumericIsUndefined(t *testing.T) {
	res, err := Evaluate(ScaleGlasgow, json.RawMessage(`{"ocular":"abc","verbal":4,"motora":6}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Defined {
		t.Errorf("expected undefined, got %+v", res)
	}
}

func TestEvaluate_EmptyPayloadIsUndefined(t *testing.T) {
	for _, s := range Catalog() {
		res, err := Evaluate(s.Key, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", s.Key, err)
		}
		if res.Defined || res.Scale != s.Key {
			t.Errorf("%s: expected undefined result, got %+v", s.Key, res)
		}
	}
}

func TestEvaluate_UnknownField(t *testing.T) {
	_, err := Evaluate(ScaleApgar, json.RawMessage(`{"aparencia":2,"cor":"rosa"}`))
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestEvaluate_UnknownScale(t *testing.T) {
	_, err := Evaluate("morse", json.RawMessage(`{}`))
	if !apperr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestEvaluate_NEWS(t *testing.T) {
	raw := `{"fr":24,"spo2":92,"suplemento_o2":"sim","temperatura":"38.5","pas":100,"fc":115,"consciencia":"alerta"}`
	res, err := Evaluate(ScaleNEWS, json.RawMessage(raw))
	if got := mustScore(t, res, err); got != 11 {
		t.Errorf("expected 11, got %d", got)
	}
}

func TestCatalog(t *testing.T) {
	cat := Catalog()
	if len(cat) != 8 {
		t.Fatalf("expected 8 scales, got %d", len(cat))
	}
	for _, s := range cat {
		if s.Name == "" || len(s.Fields) == 0 {
			t.Errorf("incomplete catalog entry %+v", s)
		}
	}
	if got := len(cat[0].Fields[0].Options); got != 4 {
		t.Errorf("expected 4 glasgow eye options, got %d", got)
	}
}

func TestNumber_BSONRoundTrip(t *testing.T) {
	type doc struct {
		A Number `bson:"a"`
		B Number `bson:"b"`
	}
	data, err := bson.Marshal(doc{A: N(98.5)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out doc
	if err := bson.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := out.A.Value(); !ok || v != 98.5 {
		t.Errorf("expected 98.5, got %v (%v)", v, ok)
	}
	if out.B.IsSet() {
		t.Error("expected b to stay unset")
	}
}
