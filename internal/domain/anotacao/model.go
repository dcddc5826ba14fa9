package anotacao

import (
	"strings"
	"time"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

const (
	TipoLivre        = "Livre"
	TipoSOAP         = "SOAP"
	TipoSBAR         = "SBAR"
	TipoPsiquiatrica = "Psiquiátrica"
)

var Tipos = []string{TipoLivre, TipoSOAP, TipoSBAR, TipoPsiquiatrica}

// Note is a student's practice note attached to a patient record.
type Note struct {
	ID           string        `json:"id"`
	ProntuarioID string        `json:"prontuario_id"`
	Titulo       string        `json:"titulo,omitempty"`
	Tipo         string        `json:"tipo"`
	Conteudo     string        `json:"conteudo,omitempty"`
	SOAP         *SOAP         `json:"soap,omitempty"`
	SBAR         *SBAR         `json:"sbar,omitempty"`
	ExameMental  *MentalStatus `json:"exame_mental,omitempty"`
	CreatedDate  time.Time     `json:"created_date"`
}

func (n Note) DocumentID() string   { return n.ID }
func (n Note) CreatedAt() time.Time { return n.CreatedDate }

type SOAP struct {
	Subjetivo string `json:"subjetivo,omitempty"`
	Objetivo  string `json:"objetivo,omitempty"`
	Avaliacao string `json:"avaliacao,omitempty"`
	Plano     string `json:"plano,omitempty"`
}

func (s *SOAP) empty() bool {
	return s == nil || blank(s.Subjetivo, s.Objetivo, s.Avaliacao, s.Plano)
}

type SBAR struct {
	Situacao     string `json:"situacao,omitempty"`
	Background   string `json:"background,omitempty"`
	Avaliacao    string `json:"avaliacao,omitempty"`
	Recomendacao string `json:"recomendacao,omitempty"`
}

func (s *SBAR) empty() bool {
	return s == nil || blank(s.Situacao, s.Background, s.Avaliacao, s.Recomendacao)
}

// MentalStatus is the psychiatric summary (súmula psiquiátrica): one
// free-text finding per domain of the mental status exam.
type MentalStatus struct {
	Aparencia   string `json:"aparencia,omitempty"`
	Consciencia string `json:"consciencia,omitempty"`
	Orientacao  string `json:"orientacao,omitempty"`
	Memoria     string `json:"memoria,omitempty"`
	Atencao     string `json:"atencao,omitempty"`
	Pensamento  string `json:"pensamento,omitempty"`
	Afeto       string `json:"afeto,omitempty"`
	Critica     string `json:"critica,omitempty"`
}

func (m *MentalStatus) empty() bool {
	return m == nil || blank(m.Aparencia, m.Consciencia, m.Orientacao, m.Memoria,
		m.Atencao, m.Pensamento, m.Afeto, m.Critica)
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Validate defaults the type to Livre and checks that the body matching the
// type has content.
func (n *Note) Validate() error {
	if n.Tipo == "" {
		n.Tipo = TipoLivre
	}

	var errs apperr.Collector
	errs.Require("prontuario_id", n.ProntuarioID)
	errs.OneOf("tipo", n.Tipo, Tipos)
	switch n.Tipo {
	case TipoLivre:
		errs.Require("conteudo", n.Conteudo)
	case TipoSOAP:
		if n.SOAP.empty() {
			errs.Add("soap must have at least one field filled")
		}
	case TipoSBAR:
		if n.SBAR.empty() {
			errs.Add("sbar must have at least one field filled")
		}
	case TipoPsiquiatrica:
		if n.ExameMental.empty() {
			errs.Add("exame_mental must have at least one field filled")
		}
	}
	return errs.Err()
}
