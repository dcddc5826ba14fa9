// Package biblioteca serves the read-only reference library: protocols,
// guides and manuals students consult while documenting.
package biblioteca

import (
	"strconv"
	"time"
)

type Resource struct {
	ID          string    `json:"id"`
	Titulo      string    `json:"titulo"`
	Descricao   string    `json:"descricao"`
	Tipo        string    `json:"tipo"`
	Categoria   string    `json:"categoria"`
	CreatedDate time.Time `json:"created_date"`
}

var seed = []Resource{
	{Titulo: "Protocolo de Sepse", Descricao: "Diretrizes atualizadas para identificação e tratamento.", Tipo: "Protocolo", Categoria: "Emergência"},
	{Titulo: "Guia de Curativos", Descricao: "Manual técnico para tratamento de feridas.", Tipo: "PDF", Categoria: "Procedimentos"},
	{Titulo: "Prevenção de Lesão por Pressão", Descricao: "Aplicação da escala de Braden e medidas de prevenção.", Tipo: "Protocolo", Categoria: "Segurança do Paciente"},
	{Titulo: "Escore de Alerta Precoce (NEWS)", Descricao: "Parâmetros, pontuação e condutas por faixa de risco.", Tipo: "Guia", Categoria: "Emergência"},
	{Titulo: "Classificação de Risco - Manchester", Descricao: "Cores, tempos-alvo e discriminadores do protocolo.", Tipo: "Guia", Categoria: "Emergência"},
	{Titulo: "Registro SOAP e SBAR", Descricao: "Modelos de anotação e passagem de plantão.", Tipo: "PDF", Categoria: "Documentação"},
	{Titulo: "Administração Segura de Medicamentos", Descricao: "Os certos da medicação e dupla checagem.", Tipo: "Protocolo", Categoria: "Segurança do Paciente"},
}

// Catalog is an in-memory, immutable list of resources.
type Catalog struct {
	items []Resource
}

// NewCatalog seeds the library. Every resource gets a sequential id and the
// given creation time.
func NewCatalog(now time.Time) *Catalog {
	items := make([]Resource, len(seed))
	for i, r := range seed {
		r.ID = strconv.Itoa(i + 1)
		r.CreatedDate = now.UTC().Truncate(time.Millisecond)
		items[i] = r
	}
	return &Catalog{items: items}
}

// List returns the resources matching categoria and tipo exactly; empty
// filters match everything.
func (c *Catalog) List(categoria, tipo string) []Resource {
	out := make([]Resource, 0, len(c.items))
	for _, r := range c.items {
		if categoria != "" && r.Categoria != categoria {
			continue
		}
		if tipo != "" && r.Tipo != tipo {
			continue
		}
		out = append(out, r)
	}
	return out
}
