package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/locker"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/repository"
	"github.com/vfg2006/campaign-autopilot-api/internal/config"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

// Runner coordena a execução do pipeline de uma conta: lease no Redis,
// fetch do snapshot, decisão, persistência e drenagem da fila de pendências
type Runner struct {
	coordinator  locker.Coordinator
	messenger    locker.Messenger
	fetcher      meta.SnapshotFetcher
	engine       *Engine
	scheduleRepo repository.ScheduleRepository
	timeout      time.Duration
}

func NewRunner(
	coordinator locker.Coordinator,
	messenger locker.Messenger,
	fetcher meta.SnapshotFetcher,
	engine *Engine,
	scheduleRepo repository.ScheduleRepository,
	cfg config.Pipeline,
) *Runner {
	return &Runner{
		coordinator:  coordinator,
		messenger:    messenger,
		fetcher:      fetcher,
		engine:       engine,
		scheduleRepo: scheduleRepo,
		timeout:      time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	}
}

// Run tenta adquirir o lease da conta. Se outra execução estiver em
// andamento, o gatilho entra na fila de pendências e retorna imediatamente.
// Após liberar o lease, a fila é drenada e o próximo gatilho reexecuta.
func (r *Runner) Run(ctx context.Context, trigger domain.Trigger) error {
	acquired, err := r.coordinator.TryAcquire(ctx, trigger.AdAccountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": trigger.AdAccountID,
			"error":         err.Error(),
		}).Error("Erro ao adquirir lease da conta")
		return err
	}

	if !acquired {
		if err := r.coordinator.Enqueue(ctx, trigger.AdAccountID, trigger); err != nil {
			logrus.WithFields(logrus.Fields{
				"ad_account_id": trigger.AdAccountID,
				"error":         err.Error(),
			}).Error("Erro ao enfileirar gatilho pendente")
			return err
		}

		r.messenger.Append(ctx, trigger.UserID, trigger.AdAccountID,
			"Another check is already running for this account; request queued")
		return nil
	}

	// O lease precisa ser liberado antes da drenagem, senão o gatilho
	// drenado encontraria a própria conta travada
	func() {
		defer r.coordinator.Release(ctx, trigger.AdAccountID)

		if err := r.execute(ctx, trigger); err != nil {
			logrus.WithFields(logrus.Fields{
				"ad_account_id": trigger.AdAccountID,
				"error":         err.Error(),
			}).Error("Execução do pipeline falhou")
		}
	}()

	if next, ok := r.coordinator.DrainNext(ctx, trigger.AdAccountID); ok {
		return r.Run(ctx, *next)
	}

	return nil
}

func (r *Runner) execute(ctx context.Context, trigger domain.Trigger) error {
	now := time.Now()

	threshold, err := strconv.ParseFloat(trigger.Slot.CPPMetric, 64)
	if err != nil {
		message := fmt.Sprintf("Invalid CPP threshold %q for slot %s; skipping check", trigger.Slot.CPPMetric, trigger.Slot.Time)
		r.messenger.Append(ctx, trigger.UserID, trigger.AdAccountID, message)
		return r.scheduleRepo.UpdateBookkeeping(trigger.AdAccountID, domain.CheckStatusFailed, message, now)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	today := now.Format("2006-01-02")
	dateRange := &domain.DateRange{Since: today, Until: today}

	r.messenger.Append(ctx, trigger.UserID, trigger.AdAccountID,
		fmt.Sprintf("Fetching campaign data for account %s", trigger.AdAccountID))

	snapshot, err := r.fetcher.FetchSnapshot(ctx, trigger.AdAccountID, trigger.AccessToken, dateRange)
	if err != nil {
		message := fmt.Sprintf("Failed to fetch campaign data: %v", err)
		r.messenger.Append(ctx, trigger.UserID, trigger.AdAccountID, message)

		if dbErr := r.scheduleRepo.UpdateBookkeeping(trigger.AdAccountID, domain.CheckStatusFailed, message, now); dbErr != nil {
			logrus.WithFields(logrus.Fields{
				"ad_account_id": trigger.AdAccountID,
				"error":         dbErr.Error(),
			}).Error("Erro ao registrar falha do fetch no banco")
		}

		return err
	}

	// O snapshot recém-buscado substitui o persistido antes da decisão,
	// para que a conta reflita a plataforma mesmo se a aplicação falhar
	if err := r.scheduleRepo.UpdateSnapshot(trigger.AdAccountID, snapshot.Test, snapshot.Regular,
		domain.CheckStatusOngoing, "Campaign data fetched; checking CPP thresholds", now); err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": trigger.AdAccountID,
			"error":         err.Error(),
		}).Error("Erro ao persistir snapshot recém-buscado")
		return err
	}

	result := r.engine.Apply(ctx, trigger, snapshot.For(trigger.Slot.CampaignType), threshold)

	message := fmt.Sprintf("Check for %s campaigns at %s: %s",
		trigger.Slot.CampaignType, trigger.Slot.Time, result.Summary())

	if err := r.scheduleRepo.UpdateSnapshot(trigger.AdAccountID, snapshot.Test, snapshot.Regular,
		domain.CheckStatusSuccess, message, now); err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": trigger.AdAccountID,
			"error":         err.Error(),
		}).Error("Erro ao persistir snapshot da conta")
		return err
	}

	r.messenger.Append(ctx, trigger.UserID, trigger.AdAccountID, message)

	logrus.WithFields(logrus.Fields{
		"ad_account_id": trigger.AdAccountID,
		"campaign_type": trigger.Slot.CampaignType,
		"watch":         trigger.Slot.Watch,
		"evaluated":     result.Evaluated,
		"changed":       result.Changed,
		"failed":        result.Failed,
	}).Info("Pipeline da conta concluído")

	return nil
}
