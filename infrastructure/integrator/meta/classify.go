package meta

import (
	"strings"

	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

const (
	testKeyword    = "so1"
	regularKeyword = "so2"
)

// normalizeWords troca todo caractere não alfanumérico por espaço,
// baixa a caixa e divide em palavras
func normalizeWords(text string) []string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return ' '
		}
	}, text)

	return strings.Fields(strings.ToLower(mapped))
}

func containsWord(words []string, keyword string) bool {
	for _, w := range words {
		if w == keyword {
			return true
		}
	}
	return false
}

// ClassifyCampaignName decide se o nome pertence a TEST (so1) ou REGULAR (so2).
// Campanhas sem nenhuma das palavras-chave ficam fora do snapshot.
func ClassifyCampaignName(name string) (domain.CampaignType, bool) {
	words := normalizeWords(name)

	if containsWord(words, testKeyword) {
		return domain.CampaignTypeTest, true
	}

	if containsWord(words, regularKeyword) {
		return domain.CampaignTypeRegular, true
	}

	return "", false
}
