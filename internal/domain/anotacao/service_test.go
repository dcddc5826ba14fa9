package anotacao

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nursesim/prontuario/internal/platform/apperr"
	"github.com/nursesim/prontuario/internal/platform/docstore"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	coll, err := docstore.Open[Note](context.Background(), docstore.NewMemoryStore(), Collection, FieldProntuario)
	if err != nil {
		t.Fatalf("open collection: %v", err)
	}
	return NewService(NewRepository(coll), nil)
}

func TestNote_Validate(t *testing.T) {
	tests := []struct {
		name string
		note Note
		want string
	}{
		{"free text ok", Note{ProntuarioID: "p1", Conteudo: "Paciente calmo"}, ""},
		{"free text empty", Note{ProntuarioID: "p1", Tipo: TipoLivre}, "conteudo is required"},
		{"missing prontuario", Note{Conteudo: "x"}, "prontuario_id is required"},
		{"bad type", Note{ProntuarioID: "p1", Tipo: "DAR"}, "tipo must be one of"},
		{"soap ok", Note{ProntuarioID: "p1", Tipo: TipoSOAP, SOAP: &SOAP{Subjetivo: "Refere dor"}}, ""},
		{"soap missing", Note{ProntuarioID: "p1", Tipo: TipoSOAP}, "soap must have at least one field filled"},
		{"soap blank", Note{ProntuarioID: "p1", Tipo: TipoSOAP, SOAP: &SOAP{Plano: "  "}}, "soap must have"},
		{"sbar ok", Note{ProntuarioID: "p1", Tipo: TipoSBAR, SBAR: &SBAR{Recomendacao: "Avaliar médico"}}, ""},
		{"sbar empty", Note{ProntuarioID: "p1", Tipo: TipoSBAR, SBAR: &SBAR{}}, "sbar must have"},
		{"mental status ok", Note{ProntuarioID: "p1", Tipo: TipoPsiquiatrica, ExameMental: &MentalStatus{Afeto: "Hipotímico"}}, ""},
		{"mental status missing", Note{ProntuarioID: "p1", Tipo: TipoPsiquiatrica}, "exame_mental must have at least one field filled"},
		{"mental status blank", Note{ProntuarioID: "p1", Tipo: TipoPsiquiatrica, ExameMental: &MentalStatus{Critica: " "}}, "exame_mental must have"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.note
			err := n.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !apperr.IsValidation(err) || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestNote_DefaultsToFreeText(t *testing.T) {
	n := Note{ProntuarioID: "p1", Conteudo: "x"}
	if err := n.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Tipo != TipoLivre {
		t.Errorf("expected Livre, got %q", n.Tipo)
	}
}

func TestService_CreateAndList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, text := range []string{"primeira", "segunda"} {
		if err := svc.Create(ctx, &Note{ProntuarioID: "p1", Conteudo: text}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := svc.Create(ctx, &Note{ProntuarioID: "p2", Conteudo: "outra"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := svc.ListByProntuario(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].Conteudo != "primeira" || items[1].Conteudo != "segunda" {
		t.Errorf("unexpected notes %+v", items)
	}
}

func TestService_ListRequiresProntuario(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.ListByProntuario(context.Background(), ""); !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestHandler_CreateMentalStatus(t *testing.T) {
	h := NewHandler(newTestService(t))
	e := echo.New()
	body := `{"prontuario_id":"p1","tipo":"Psiquiátrica","exame_mental":{"orientacao":"Desorientado no tempo","critica":"Ausente"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/anotacoes", strings.NewReader(body))
	rec := httptest.NewRecorder()

	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"critica":"Ausente"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_Create(t *testing.T) {
	h := NewHandler(newTestService(t))
	e := echo.New()
	body := `{"prontuario_id":"p1","titulo":"Passagem de plantão","tipo":"SBAR","sbar":{"situacao":"Hipotensão"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/anotacoes", strings.NewReader(body))
	rec := httptest.NewRecorder()

	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"situacao":"Hipotensão"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}
