package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

func TestClassifyCampaignName(t *testing.T) {
	tests := []struct {
		name       string
		campaign   string
		wantType   domain.CampaignType
		wantListed bool
	}{
		{
			name:     "so1 em qualquer posição marca TEST",
			campaign: "Loja X - so1 - conversão",
			wantType: domain.CampaignTypeTest, wantListed: true,
		},
		{
			name:     "so2 marca REGULAR",
			campaign: "SO2 manutenção agosto",
			wantType: domain.CampaignTypeRegular, wantListed: true,
		},
		{
			name:     "caixa alta e pontuação não atrapalham",
			campaign: "[SO1]/escala",
			wantType: domain.CampaignTypeTest, wantListed: true,
		},
		{
			name:     "so1 precisa ser palavra inteira",
			campaign: "promoso1deagosto",
			wantListed: false,
		},
		{
			name:       "nome sem palavra-chave fica de fora",
			campaign:   "Campanha institucional",
			wantListed: false,
		},
		{
			name:     "so1 vence quando as duas aparecem",
			campaign: "so1 so2 mix",
			wantType: domain.CampaignTypeTest, wantListed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, listed := ClassifyCampaignName(tt.campaign)
			assert.Equal(t, tt.wantListed, listed)
			if tt.wantListed {
				assert.Equal(t, tt.wantType, gotType)
			}
		})
	}
}
