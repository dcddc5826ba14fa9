package scoring

import (
	"math"

	"github.com/nursesim/prontuario/internal/platform/apperr"
)

// Option is one selectable value of an ordinal input.
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Field describes one input of a scale. Ordinal inputs carry their options;
// free numeric inputs carry a unit and, for vital signs, the normal range.
type Field struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Options []Option `json:"options,omitempty"`
	Choices []string `json:"choices,omitempty"`
	Unit    string   `json:"unit,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// pick validates n against the field's options. It reports false when n is
// unset or invalid; invalid values are recorded on errs.
func (f Field) pick(errs *apperr.Collector, n Number) (int, bool) {
	v, ok := n.Value()
	if !ok {
		return 0, false
	}
	if v == math.Trunc(v) {
		for _, o := range f.Options {
			if float64(o.Value) == v {
				return o.Value, true
			}
		}
	}
	errs.Add("%s must be one of %s, got %s", f.Key, optionRange(f.Options), formatNumber(v))
	return 0, false
}

func optionRange(options []Option) string {
	lo, hi := options[0].Value, options[0].Value
	for _, o := range options[1:] {
		if o.Value < lo {
			lo = o.Value
		}
		if o.Value > hi {
			hi = o.Value
		}
	}
	return formatNumber(float64(lo)) + ".." + formatNumber(float64(hi))
}

func opts(labels ...string) []Option {
	// labels are listed from the highest value down to 1
	out := make([]Option, len(labels))
	for i, l := range labels {
		out[i] = Option{Value: len(labels) - i, Label: l}
	}
	return out
}

var (
	glasgowEye = Field{Key: "ocular", Label: "Abertura ocular", Options: opts(
		"Espontânea", "Ao estímulo verbal", "Ao estímulo doloroso", "Ausente")}
	glasgowVerbal = Field{Key: "verbal", Label: "Resposta verbal", Options: opts(
		"Orientada", "Confusa", "Palavras inapropriadas", "Sons incompreensíveis", "Ausente")}
	glasgowMotor = Field{Key: "motora", Label: "Resposta motora", Options: opts(
		"Obedece comandos", "Localiza dor", "Movimento de retirada",
		"Flexão anormal (decorticação)", "Extensão anormal (descerebração)", "Ausente")}
)

var (
	bradenSensory = Field{Key: "percepcao_sensorial", Label: "Percepção Sensorial", Options: opts(
		"Nenhuma limitação", "Levemente limitada", "Muito limitada", "Totalmente limitada")}
	bradenMoisture = Field{Key: "umidade", Label: "Umidade", Options: opts(
		"Raramente úmida", "Ocasionalmente úmida", "Frequentemente úmida", "Constantemente úmida")}
	bradenActivity = Field{Key: "atividade", Label: "Atividade", Options: opts(
		"Caminha frequentemente", "Caminha ocasionalmente", "Restrito à cadeira", "Acamado")}
	bradenMobility = Field{Key: "mobilidade", Label: "Mobilidade", Options: opts(
		"Nenhuma limitação", "Levemente limitada", "Muito limitada", "Totalmente imóvel")}
	bradenNutrition = Field{Key: "nutricao", Label: "Nutrição", Options: opts(
		"Excelente", "Adequada", "Provavelmente inadequada", "Muito pobre")}
	bradenFriction = Field{Key: "friccao_cisalhamento", Label: "Fricção e Cisalhamento", Options: opts(
		"Nenhum problema", "Problema potencial", "Problema")}
)

func apgarOpts(absent, partial, full string) []Option {
	return []Option{{0, absent}, {1, partial}, {2, full}}
}

var (
	apgarAppearance = Field{Key: "aparencia", Label: "Aparência (Cor)",
		Options: apgarOpts("Cianose central/Pálido", "Acrocianose", "Rosado")}
	apgarPulse = Field{Key: "pulso", Label: "Pulso (Frequência Cardíaca)",
		Options: apgarOpts("Ausente", "< 100 bpm", "> 100 bpm")}
	apgarGrimace = Field{Key: "gesticulacao", Label: "Gesticulação (Irritabilidade)",
		Options: apgarOpts("Sem resposta", "Caretas/Choro fraco", "Espirro/Tosse/Choro forte")}
	apgarActivity = Field{Key: "atividade", Label: "Atividade (Tônus Muscular)",
		Options: apgarOpts("Flácido", "Alguma flexão", "Movimentos ativos")}
	apgarRespiration = Field{Key: "respiracao", Label: "Respiração",
		Options: apgarOpts("Ausente", "Lenta/Irregular", "Forte/Regular (Choro)")}
)

type rassLevel struct {
	Value       int
	Label       string
	Description string
}

var rassLevels = []rassLevel{
	{4, "Combativo", "Violento, perigo para a equipe"},
	{3, "Muito Agitado", "Puxa tubos/cateteres, agressivo"},
	{2, "Agitado", "Movimentos desordenados frequentes"},
	{1, "Inquieto", "Ansioso, apreensivo, movimentos não agressivos"},
	{0, "Alerta e Calmo", "Comportamento normal"},
	{-1, "Sonolento", "Acorda com voz, mantém olhos abertos > 10s"},
	{-2, "Sedação Leve", "Acorda com voz, contato visual < 10s"},
	{-3, "Sedação Moderada", "Move-se ou abre olhos à voz, sem contato visual"},
	{-4, "Sedação Profunda", "Sem resposta à voz, move-se ao estímulo físico"},
	{-5, "Não Despertável", "Sem resposta a estímulo físico ou verbal"},
}

var rassField = func() Field {
	f := Field{Key: "nivel", Label: "Nível RASS"}
	for _, l := range rassLevels {
		f.Options = append(f.Options, Option{Value: l.Value, Label: l.Label})
	}
	return f
}()

type triageTier struct {
	Color         string
	TargetMinutes int
	Urgency       string
	Description   string
}

var manchesterTiers = []triageTier{
	{"vermelho", 0, "Emergência", "Risco imediato de morte"},
	{"laranja", 10, "Muito Urgente", "Risco potencial de morte"},
	{"amarelo", 60, "Urgente", "Necessita de atendimento rápido"},
	{"verde", 120, "Pouco Urgente", "Condições não agudas"},
	{"azul", 240, "Não Urgente", "Atendimento eletivo"},
}

var manchesterField = func() Field {
	f := Field{Key: "cor", Label: "Classificação de risco"}
	for _, t := range manchesterTiers {
		f.Choices = append(f.Choices, t.Color)
	}
	return f
}()

var painField = Field{Key: "valor", Label: "Intensidade da dor", Options: func() []Option {
	out := make([]Option, 0, 11)
	for v := 0; v <= 10; v++ {
		out = append(out, Option{Value: v, Label: painLabel(v)})
	}
	return out
}()}
