package meta

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-autopilot-api/internal/config"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

// Snapshot é a visão completa buscada da plataforma: os dois mapas, um por
// tipo de campanha, prontos para substituir o snapshot persistido da conta
type Snapshot struct {
	Test    domain.EntitySnapshot
	Regular domain.EntitySnapshot
}

// For retorna o mapa observado pelo tipo de campanha informado
func (s *Snapshot) For(campaignType domain.CampaignType) domain.EntitySnapshot {
	if campaignType == domain.CampaignTypeRegular {
		return s.Regular
	}
	return s.Test
}

// SnapshotFetcher busca campanhas/conjuntos e deriva o CPP por entidade
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, accountID, accessToken string, dateRange *domain.DateRange) (*Snapshot, error)
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// FetchSnapshot monta o snapshot da conta. A lista de campanhas é obrigatória:
// erro nela aborta o fetch com a mensagem upstream. Os insights são melhor
// esforço: se falharem, as entidades entram com CPP 0.
func (s *MetaIntegrator) FetchSnapshot(
	ctx context.Context,
	accountID, accessToken string,
	dateRange *domain.DateRange,
) (*Snapshot, error) {
	campaigns, err := s.Client.GetCampaignsWithAdSets(ctx, accountID, accessToken)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("snapshot: falha ao buscar campanhas da conta")
		return nil, err
	}

	campaignCPP := s.fetchCPP(ctx, accountID, accessToken, metaclient.LevelCampaign, dateRange)
	adsetCPP := s.fetchCPP(ctx, accountID, accessToken, metaclient.LevelAdSet, dateRange)

	snapshot := &Snapshot{
		Test:    make(domain.EntitySnapshot),
		Regular: make(domain.EntitySnapshot),
	}

	for _, campaign := range campaigns {
		campaignType, ok := ClassifyCampaignName(campaign.Name)
		if !ok {
			continue
		}

		data := &domain.CampaignData{
			CampaignName: campaign.Name,
			Status:       domain.EntityStatus(campaign.Status),
			CPP:          campaignCPP[campaign.ID],
			AdSets:       make(map[string]*domain.AdSetData, len(campaign.AdSets.Data)),
		}

		for _, adset := range campaign.AdSets.Data {
			data.AdSets[adset.ID] = &domain.AdSetData{
				Name:   adset.Name,
				Status: domain.EntityStatus(adset.Status),
				CPP:    adsetCPP[adset.ID],
			}
		}

		if campaignType == domain.CampaignTypeTest {
			snapshot.Test[campaign.ID] = data
		} else {
			snapshot.Regular[campaign.ID] = data
		}
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"test":       len(snapshot.Test),
		"regular":    len(snapshot.Regular),
	}).Debug("snapshot: campanhas classificadas com sucesso")

	return snapshot, nil
}

// fetchCPP busca os insights de um nível; erro aqui degrada para CPP 0
func (s *MetaIntegrator) fetchCPP(
	ctx context.Context,
	accountID, accessToken string,
	level metaclient.InsightLevel,
	dateRange *domain.DateRange,
) map[string]float64 {
	rows, err := s.Client.GetInsights(ctx, accountID, accessToken, level, dateRange)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"level":      level,
			"error":      err.Error(),
		}).Error("snapshot: falha ao buscar insights, entidades ficarão com CPP 0")
		return map[string]float64{}
	}

	return CPPByEntity(rows, level)
}
