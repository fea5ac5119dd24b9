package meta

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestMetaIntegrator_FetchSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	integrator := New(nil, client)

	campaigns := []metadomain.Campaign{
		{
			ID:     "camp-1",
			Name:   "Loja - so1 - conversão",
			Status: "ACTIVE",
			AdSets: metadomain.AdSetList{
				Data: []metadomain.AdSet{
					{ID: "adset-1", Name: "público frio", Status: "ACTIVE"},
				},
			},
		},
		{ID: "camp-2", Name: "so2 manutenção", Status: "PAUSED"},
		{ID: "camp-3", Name: "institucional", Status: "ACTIVE"}, // sem palavra-chave
	}

	client.EXPECT().
		GetCampaignsWithAdSets(gomock.Any(), "act_123", "token-abc").
		Return(campaigns, nil)

	client.EXPECT().
		GetInsights(gomock.Any(), "act_123", "token-abc", metaclient.LevelCampaign, gomock.Any()).
		Return([]metadomain.InsightRow{
			{
				CampaignID: "camp-1",
				Spend:      "100",
				Actions:    []metadomain.Action{{ActionType: "onsite_conversion.initiate_checkout", Value: "4"}},
			},
		}, nil)

	client.EXPECT().
		GetInsights(gomock.Any(), "act_123", "token-abc", metaclient.LevelAdSet, gomock.Any()).
		Return([]metadomain.InsightRow{
			{
				AdSetID: "adset-1",
				Spend:   "60",
				Actions: []metadomain.Action{{ActionType: "onsite_conversion.initiate_checkout", Value: "2"}},
			},
		}, nil)

	snapshot, err := integrator.FetchSnapshot(context.Background(), "act_123", "token-abc",
		&domain.DateRange{Since: "2026-08-31", Until: "2026-08-31"})
	require.NoError(t, err)

	// camp-3 não entra em nenhum dos mapas
	require.Len(t, snapshot.Test, 1)
	require.Len(t, snapshot.Regular, 1)

	test := snapshot.Test["camp-1"]
	require.NotNil(t, test)
	assert.Equal(t, domain.EntityStatusActive, test.Status)
	assert.Equal(t, 25.0, test.CPP)
	require.Contains(t, test.AdSets, "adset-1")
	assert.Equal(t, 30.0, test.AdSets["adset-1"].CPP)

	regular := snapshot.Regular["camp-2"]
	require.NotNil(t, regular)
	assert.Equal(t, domain.EntityStatusPaused, regular.Status)
	assert.Equal(t, 0.0, regular.CPP) // sem linha de insights
}

func TestMetaIntegrator_FetchSnapshot_CampanhasObrigatorias(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	integrator := New(nil, client)

	client.EXPECT().
		GetCampaignsWithAdSets(gomock.Any(), "act_123", "token-abc").
		Return(nil, errors.New("invalid oauth access token"))

	_, err := integrator.FetchSnapshot(context.Background(), "act_123", "token-abc", nil)
	assert.Error(t, err)
}

func TestMetaIntegrator_FetchSnapshot_InsightsMelhorEsforco(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	integrator := New(nil, client)

	client.EXPECT().
		GetCampaignsWithAdSets(gomock.Any(), "act_123", "token-abc").
		Return([]metadomain.Campaign{{ID: "camp-1", Name: "so1 teste", Status: "ACTIVE"}}, nil)

	client.EXPECT().
		GetInsights(gomock.Any(), "act_123", "token-abc", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("rate limit")).
		Times(2)

	snapshot, err := integrator.FetchSnapshot(context.Background(), "act_123", "token-abc", nil)
	require.NoError(t, err)

	// Falha nos insights degrada para CPP 0, não derruba o fetch
	assert.Equal(t, 0.0, snapshot.Test["camp-1"].CPP)
}
