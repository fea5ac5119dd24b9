package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/locker"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

// Decide aplica o limiar de CPP ao status atual da entidade.
// No modo ON, uma entidade barata (cpp abaixo do limiar) deve estar ativa;
// no modo OFF, uma entidade cara (cpp no limiar ou acima) deve ser pausada.
// As fronteiras são assimétricas de propósito: cpp igual ao limiar nunca
// liga e sempre desliga.
func Decide(current domain.EntityStatus, cpp, threshold float64, onOff domain.OnOff) (domain.EntityStatus, bool) {
	switch onOff {
	case domain.SwitchOn:
		if cpp < threshold && current != domain.EntityStatusActive {
			return domain.EntityStatusActive, true
		}
	case domain.SwitchOff:
		if cpp >= threshold && current != domain.EntityStatusPaused {
			return domain.EntityStatusPaused, true
		}
	}

	return current, false
}

// ApplyResult resume o que o engine fez em uma passada sobre o snapshot
type ApplyResult struct {
	Evaluated int
	Changed   int
	Failed    int
}

func (r ApplyResult) Summary() string {
	return fmt.Sprintf("%d entities evaluated, %d status changes applied, %d failures",
		r.Evaluated, r.Changed, r.Failed)
}

// Engine percorre o snapshot, decide e aplica as mudanças de status na
// plataforma. Falhas em uma entidade não interrompem as demais.
type Engine struct {
	client    metaclient.Client
	messenger locker.Messenger
}

func NewEngine(client metaclient.Client, messenger locker.Messenger) *Engine {
	return &Engine{
		client:    client,
		messenger: messenger,
	}
}

// Apply percorre as entidades do escopo do slot (campanhas ou conjuntos) e
// aplica as mudanças decididas, mutando o snapshot em memória a cada sucesso
// para que a persistência posterior reflita o estado real da plataforma
func (e *Engine) Apply(ctx context.Context, trigger domain.Trigger, snapshot domain.EntitySnapshot, threshold float64) ApplyResult {
	if trigger.Slot.Watch == domain.WatchAdSets {
		return e.applyToAdSets(ctx, trigger, snapshot, threshold)
	}
	return e.applyToCampaigns(ctx, trigger, snapshot, threshold)
}

func (e *Engine) applyToCampaigns(ctx context.Context, trigger domain.Trigger, snapshot domain.EntitySnapshot, threshold float64) ApplyResult {
	var result ApplyResult

	for campaignID, campaign := range snapshot {
		result.Evaluated++

		desired, changed := Decide(campaign.Status, campaign.CPP, threshold, trigger.Slot.OnOff)
		if !changed {
			e.messenger.Append(ctx, trigger.UserID, trigger.AdAccountID,
				fmt.Sprintf("Campaign %s remains %s (CPP %.2f, threshold %.2f)", campaign.CampaignName, campaign.Status, campaign.CPP, threshold))
			continue
		}

		if err := e.client.UpdateEntityStatus(ctx, campaignID, trigger.AccessToken, desired); err != nil {
			result.Failed++
			logrus.WithFields(logrus.Fields{
				"ad_account_id": trigger.AdAccountID,
				"campaign_id":   campaignID,
				"error":         err.Error(),
			}).Error("Erro ao atualizar status da campanha")
			e.messenger.Append(ctx, trigger.UserID, trigger.AdAccountID,
				fmt.Sprintf("Failed to set campaign %s to %s: %v", campaign.CampaignName, desired, err))
			continue
		}

		campaign.Status = desired
		result.Changed++
		e.messenger.Append(ctx, trigger.UserID, trigger.AdAccountID,
			fmt.Sprintf("Campaign %s turned %s (CPP %.2f, threshold %.2f)", campaign.CampaignName, desired, campaign.CPP, threshold))
	}

	return result
}

func (e *Engine) applyToAdSets(ctx context.Context, trigger domain.Trigger, snapshot domain.EntitySnapshot, threshold float64) ApplyResult {
	var result ApplyResult

	for _, campaign := range snapshot {
		for adSetID, adSet := range campaign.AdSets {
			result.Evaluated++

			desired, changed := Decide(adSet.Status, adSet.CPP, threshold, trigger.Slot.OnOff)
			if !changed {
				e.messenger.Append(ctx, trigger.UserID, trigger.AdAccountID,
					fmt.Sprintf("Ad set %s remains %s (CPP %.2f, threshold %.2f)", adSet.Name, adSet.Status, adSet.CPP, threshold))
				continue
			}

			if err := e.client.UpdateEntityStatus(ctx, adSetID, trigger.AccessToken, desired); err != nil {
				result.Failed++
				logrus.WithFields(logrus.Fields{
					"ad_account_id": trigger.AdAccountID,
					"adset_id":      adSetID,
					"error":         err.Error(),
				}).Error("Erro ao atualizar status do conjunto de anúncios")
				e.messenger.Append(ctx, trigger.UserID, trigger.AdAccountID,
					fmt.Sprintf("Failed to set ad set %s to %s: %v", adSet.Name, desired, err))
				continue
			}

			adSet.Status = desired
			result.Changed++
			e.messenger.Append(ctx, trigger.UserID, trigger.AdAccountID,
				fmt.Sprintf("Ad set %s turned %s (CPP %.2f, threshold %.2f)", adSet.Name, desired, adSet.CPP, threshold))
		}
	}

	return result
}
