package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/metaclient"
)

func TestCPPFromRow(t *testing.T) {
	tests := []struct {
		name string
		row  metadomain.InsightRow
		want float64
	}{
		{
			name: "spend dividido pelos checkouts",
			row: metadomain.InsightRow{
				Spend: "100",
				Actions: []metadomain.Action{
					{ActionType: "onsite_conversion.initiate_checkout", Value: "4"},
				},
			},
			want: 25,
		},
		{
			name: "sem ação de checkout o CPP é zero",
			row: metadomain.InsightRow{
				Spend: "100",
				Actions: []metadomain.Action{
					{ActionType: "link_click", Value: "300"},
				},
			},
			want: 0,
		},
		{
			name: "checkout zero não divide",
			row: metadomain.InsightRow{
				Spend: "100",
				Actions: []metadomain.Action{
					{ActionType: "onsite_conversion.initiate_checkout", Value: "0"},
				},
			},
			want: 0,
		},
		{
			name: "variante omni é aceita como sinônimo",
			row: metadomain.InsightRow{
				Spend: "90",
				Actions: []metadomain.Action{
					{ActionType: "omni_initiated_checkout", Value: "3"},
				},
			},
			want: 30,
		},
		{
			name: "spend ilegível vira zero",
			row: metadomain.InsightRow{
				Spend: "n/a",
				Actions: []metadomain.Action{
					{ActionType: "onsite_conversion.initiate_checkout", Value: "5"},
				},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CPPFromRow(tt.row))
		})
	}
}

func TestCPPByEntity(t *testing.T) {
	rows := []metadomain.InsightRow{
		{
			CampaignID: "camp-1",
			Spend:      "100",
			Actions:    []metadomain.Action{{ActionType: "onsite_conversion.initiate_checkout", Value: "4"}},
		},
		{
			CampaignID: "camp-2",
			Spend:      "50",
			Actions:    []metadomain.Action{{ActionType: "onsite_conversion.initiate_checkout", Value: "2"}},
		},
		{
			// Sem id no nível pedido: ignorada
			AdSetID: "adset-9",
			Spend:   "10",
		},
	}

	cpp := CPPByEntity(rows, metaclient.LevelCampaign)

	assert.Len(t, cpp, 2)
	assert.Equal(t, 25.0, cpp["camp-1"])
	assert.Equal(t, 25.0, cpp["camp-2"])
}
