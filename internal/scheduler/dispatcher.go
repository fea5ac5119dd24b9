package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/repository"
	"github.com/vfg2006/campaign-autopilot-api/internal/config"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
	"github.com/vfg2006/campaign-autopilot-api/internal/pipeline"
)

// DispatcherService verifica a cada minuto quais contas têm slot agendado
// para o horário corrente e submete os gatilhos ao pool do pipeline
type DispatcherService struct {
	scheduler    *gocron.Scheduler
	scheduleRepo repository.ScheduleRepository
	pool         *pipeline.Pool
	location     *time.Location
	enabled      bool
}

func NewDispatcherService(
	appConfig *config.Config,
	scheduleRepo repository.ScheduleRepository,
	pool *pipeline.Pool,
) (*DispatcherService, error) {
	location, err := time.LoadLocation(appConfig.Dispatcher.Timezone)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar timezone %q do dispatcher: %w", appConfig.Dispatcher.Timezone, err)
	}

	scheduler := gocron.NewScheduler(location)

	logrus.WithFields(logrus.Fields{
		"timezone": appConfig.Dispatcher.Timezone,
		"enabled":  appConfig.Dispatcher.Enabled,
	}).Info("Configuração do dispatcher de horários carregada")

	return &DispatcherService{
		scheduler:    scheduler,
		scheduleRepo: scheduleRepo,
		pool:         pool,
		location:     location,
		enabled:      appConfig.Dispatcher.Enabled,
	}, nil
}

// Start inicia o tick de minuto em minuto
func (s *DispatcherService) Start(ctx context.Context) error {
	if !s.enabled {
		logrus.Info("Dispatcher de horários desabilitado por configuração")
		return nil
	}

	_, err := s.scheduler.Cron("* * * * *").Do(func() {
		s.dispatchDueSlots(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar o tick do dispatcher: %w", err)
	}

	s.scheduler.StartAsync()

	logrus.Info("Dispatcher de horários iniciado")
	return nil
}

// Stop interrompe o agendador
func (s *DispatcherService) Stop() {
	s.scheduler.Stop()
	logrus.Info("Dispatcher de horários interrompido")
}

// dispatchDueSlots varre os agendamentos e dispara todo slot Running cujo
// horário coincide com o minuto corrente no fuso configurado
func (s *DispatcherService) dispatchDueSlots(ctx context.Context) {
	now := time.Now().In(s.location).Format("15:04")

	schedules, err := s.scheduleRepo.ListAll()
	if err != nil {
		logrus.WithField("error", err.Error()).Error("Erro ao listar agendamentos no tick do dispatcher")
		return
	}

	triggers := dueTriggers(schedules, now)
	for _, trigger := range triggers {
		s.pool.Submit(ctx, trigger)
	}

	if len(triggers) > 0 {
		logrus.WithFields(logrus.Fields{
			"time":       now,
			"dispatched": len(triggers),
		}).Info("Gatilhos do minuto submetidos ao pipeline")
	}
}

// dueTriggers seleciona os slots Running cujo horário bate com o minuto dado
func dueTriggers(schedules []*domain.AccountSchedule, now string) []domain.Trigger {
	var triggers []domain.Trigger

	for _, schedule := range schedules {
		for _, slot := range schedule.ScheduleData {
			if slot.Status != domain.SlotStatusRunning || slot.Time != now {
				continue
			}

			triggers = append(triggers, domain.Trigger{
				UserID:      schedule.UserID,
				AdAccountID: schedule.AdAccountID,
				AccessToken: schedule.AccessToken,
				Slot:        slot,
			})
		}
	}

	return triggers
}
