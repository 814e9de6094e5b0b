package invoice

import (
	"regexp"
	"strconv"
	"strings"
)

// Le champ notes des anciennes factures embarque les lignes facturées sous la
// forme d'un bloc marqué :
//
//	LIGNES:
//	1 x Main d'œuvre @ 80
//	1 x Filtre à huile @ 45.5
//
// Les nouvelles factures portent des lignes normalisées en base, mais le bloc
// est toujours écrit à l'émission et reste la source de lecture pour les
// factures antérieures.

const Marker = "LIGNES:"

const LaborLabel = "Main d'œuvre"

var linePattern = regexp.MustCompile(`(?i)^(\d+)\s*x\s*(.+)\s*@\s*([0-9]+[.,]?[0-9]*)$`)

type Ligne struct {
	Designation string  `json:"designation"`
	Montant     float64 `json:"montant"`
}

type DecodedLigne struct {
	Quantite     int     `json:"quantite"`
	Designation  string  `json:"designation"`
	PrixUnitaire float64 `json:"prix_unitaire"`
	Total        float64 `json:"total"`
}

// EncodeLines construit le bloc LIGNES: à partir du prix de main d'œuvre et
// des lignes supplémentaires, et l'ajoute aux notes libres de l'utilisateur.
func EncodeLines(freeNotes string, laborPrice float64, extras []Ligne) string {
	tokens := make([]string, 0, len(extras)+1)
	tokens = append(tokens, "1 x "+LaborLabel+" @ "+formatAmount(laborPrice))
	for _, l := range extras {
		tokens = append(tokens, "1 x "+l.Designation+" @ "+formatAmount(l.Montant))
	}

	block := Marker + "\n" + strings.Join(tokens, "\n")

	notes := strings.TrimRight(freeNotes, "\n")
	if notes == "" {
		return block
	}
	return notes + "\n\n" + block
}

// DecodeLines retrouve le bloc après le marqueur et parse chaque ligne.
// Les lignes qui ne matchent pas le format sont ignorées silencieusement,
// comme le faisait l'affichage d'origine.
func DecodeLines(notes string) []DecodedLigne {
	idx := strings.Index(notes, Marker)
	if idx < 0 {
		return nil
	}

	var out []DecodedLigne
	for _, raw := range strings.Split(notes[idx+len(Marker):], "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		qty, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		unit, err := strconv.ParseFloat(strings.ReplaceAll(m[3], ",", "."), 64)
		if err != nil {
			continue
		}

		out = append(out, DecodedLigne{
			Quantite:     qty,
			Designation:  strings.TrimSpace(m[2]),
			PrixUnitaire: unit,
			Total:        float64(qty) * unit,
		})
	}

	return out
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
