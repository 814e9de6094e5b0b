package invoice

// Convention comptable française : HT puis TTC avec TVA à 20 %.
const (
	TVARate = 0.20
	// Tarif horaire de repli quand la facture ne porte aucun total.
	DefaultLaborRate = 30.0
)

type Totals struct {
	HT  float64 `json:"total_ht"`
	TTC float64 `json:"total_ttc"`
}

// ComputeTotals reproduit la double logique de l'affichage de facture :
// un total_ht explicite fait foi (TTC dérivé seulement s'il est absent),
// sinon repli sur main d'œuvre au tarif horaire + somme des lignes décodées.
func ComputeTotals(totalHT, totalTTC *float64, dureeHeures float64, lignes []DecodedLigne) Totals {
	if totalHT != nil {
		t := Totals{HT: *totalHT}
		if totalTTC != nil {
			t.TTC = *totalTTC
		} else {
			t.TTC = *totalHT * (1 + TVARate)
		}
		return t
	}

	ht := dureeHeures * DefaultLaborRate
	for _, l := range lignes {
		ht += l.Total
	}

	return Totals{
		HT:  ht,
		TTC: ht * (1 + TVARate),
	}
}
