// Package reference holds the static option lists backing the clinic forms:
// medical specialties, bookable time slots and weekday labels. The validator
// and the presentation layer both read from here so the lists exist in one
// place only.
package reference

import "sort"

// Option is a code/label pair for a dropdown entry.
type Option struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var specialties = map[string]string{
	"acupuntura":                    "Acupuntura",
	"alergologia-imunologia":        "Alergologia e Imunologia",
	"anestesiologia":                "Anestesiologia",
	"angiologia":                    "Angiologia",
	"cancerologia":                  "Cancerologia (Oncologia Clínica)",
	"cancerologia-cirurgica":        "Cancerologia Cirúrgica",
	"cancerologia-pediatrica":       "Cancerologia Pediátrica",
	"cardiologia":                   "Cardiologia",
	"cardiologia-pediatrica":        "Cardiologia Pediátrica",
	"cirurgia-cardiovascular":       "Cirurgia Cardiovascular",
	"cirurgia-cabeca-pescoco":       "Cirurgia de Cabeça e Pescoço",
	"cirurgia-aparelho-digestivo":   "Cirurgia do Aparelho Digestivo",
	"cirurgia-geral":                "Cirurgia Geral",
	"cirurgia-oncologica":           "Cirurgia Oncológica",
	"cirurgia-pediatrica":           "Cirurgia Pediátrica",
	"cirurgia-plastica":             "Cirurgia Plástica",
	"cirurgia-da-mao":               "Cirurgia da Mão",
	"cirurgia-toracica":             "Cirurgia Torácica",
	"cirurgia-vascular":             "Cirurgia Vascular",
	"clinica-medica":                "Clínica Médica",
	"coloproctologia":               "Coloproctologia",
	"dermatologia":                  "Dermatologia",
	"endocrinologia-metabologia":    "Endocrinologia e Metabologia",
	"endocrinologia-pediatrica":     "Endocrinologia Pediátrica",
	"endoscopia":                    "Endoscopia",
	"gastroenterologia":             "Gastroenterologia",
	"gastroenterologia-pediatrica":  "Gastroenterologia Pediátrica",
	"genetica-medica":               "Genética Médica",
	"geriatria":                     "Geriatria",
	"ginecologia":                   "Ginecologia",
	"obstetricia":                   "Obstetrícia",
	"ginecologia-obstetricia":       "Ginecologia e Obstetrícia",
	"ginecologia-endocrina":         "Ginecologia Endócrina",
	"ginecologia-oncologica":        "Ginecologia Oncológica",
	"hematologia":                   "Hematologia",
	"hemoterapia":                   "Hemoterapia",
	"hematologia-hemoterapia":       "Hematologia e Hemoterapia",
	"hematologia-pediatrica":        "Hematologia Pediátrica",
	"hepatologia":                   "Hepatologia",
	"homeopatia":                    "Homeopatia",
	"infectologia":                  "Infectologia",
	"infectologia-pediatrica":       "Infectologia Pediátrica",
	"mastologia":                    "Mastologia",
	"medicina-de-emergencia":        "Medicina de Emergência",
	"medicina-de-familia-comunidade": "Medicina de Família e Comunidade",
	"medicina-do-trabalho":          "Medicina do Trabalho",
	"medicina-de-trafego":           "Medicina de Tráfego",
	"medicina-esportiva":            "Medicina Esportiva",
	"medicina-fisica-reabilitacao":  "Medicina Física e Reabilitação",
	"medicina-intensiva":            "Medicina Intensiva",
	"medicina-intensiva-pediatrica": "Medicina Intensiva Pediátrica",
	"medicina-intensiva-neonatal":   "Medicina Intensiva Neonatal",
	"medicina-legal-pericia-medica": "Medicina Legal e Perícia Médica",
	"medicina-nuclear":              "Medicina Nuclear",
	"medicina-paliativa":            "Medicina Paliativa",
	"medicina-preventiva-social":    "Medicina Preventiva e Social",
	"nefrologia":                    "Nefrologia",
	"nefrologia-pediatrica":         "Nefrologia Pediátrica",
	"neonatologia":                  "Neonatologia",
	"neurocirurgia":                 "Neurocirurgia",
	"neurologia":                    "Neurologia",
	"neurologia-pediatrica":         "Neurologia Pediátrica",
	"nutrologia":                    "Nutrologia",
	"oftalmologia":                  "Oftalmologia",
	"ortopedia":                     "Ortopedia",
	"ortopedia-traumatologia":       "Ortopedia e Traumatologia",
	"otorrinolaringologia":          "Otorrinolaringologia",
	"patologia":                     "Patologia",
	"patologia-clinica-laboratorial": "Patologia Clínica / Medicina Laboratorial",
	"pediatria":                     "Pediatria",
	"pneumologia":                   "Pneumologia",
	"pneumologia-pediatrica":        "Pneumologia Pediátrica",
	"psiquiatria":                   "Psiquiatria",
	"psiquiatria-infantil":          "Psiquiatria Infantil",
	"radiologia-diagnostico-imagem": "Radiologia e Diagnóstico por Imagem",
	"radioterapia":                  "Radioterapia",
	"reumatologia":                  "Reumatologia",
	"reumatologia-pediatrica":       "Reumatologia Pediátrica",
	"reproducao-humana":             "Reprodução Humana",
	"urologia":                      "Urologia",
}

// IsSpeciality reports whether code names a known medical speciality.
func IsSpeciality(code string) bool {
	_, ok := specialties[code]
	return ok
}

// SpecialityLabel returns the display label for code, or "" if unknown.
func SpecialityLabel(code string) string {
	return specialties[code]
}

// Specialties returns all specialities sorted by code.
func Specialties() []Option {
	opts := make([]Option, 0, len(specialties))
	for code, label := range specialties {
		opts = append(opts, Option{Code: code, Label: label})
	}
	sort.Slice(opts, func(i, j int) bool { return opts[i].Code < opts[j].Code })
	return opts
}
