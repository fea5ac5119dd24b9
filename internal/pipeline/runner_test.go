package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta"
	metamocks "github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/mocks"
	clientmocks "github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/metaclient/mocks"
	lockermocks "github.com/vfg2006/campaign-autopilot-api/infrastructure/locker/mocks"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-autopilot-api/internal/config"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type runnerMocks struct {
	coordinator  *lockermocks.MockCoordinator
	messenger    *lockermocks.MockMessenger
	fetcher      *metamocks.MockSnapshotFetcher
	client       *clientmocks.MockClient
	scheduleRepo *mocks.MockScheduleRepository
}

func newTestRunner(t *testing.T) (*Runner, *runnerMocks) {
	ctrl := gomock.NewController(t)

	m := &runnerMocks{
		coordinator:  lockermocks.NewMockCoordinator(ctrl),
		messenger:    lockermocks.NewMockMessenger(ctrl),
		fetcher:      metamocks.NewMockSnapshotFetcher(ctrl),
		client:       clientmocks.NewMockClient(ctrl),
		scheduleRepo: mocks.NewMockScheduleRepository(ctrl),
	}

	engine := NewEngine(m.client, m.messenger)
	runner := NewRunner(m.coordinator, m.messenger, m.fetcher, engine, m.scheduleRepo,
		config.Pipeline{RequestTimeoutSeconds: 30})

	return runner, m
}

func TestRunner_Run_FluxoCompleto(t *testing.T) {
	runner, m := newTestRunner(t)
	trigger := testTrigger(domain.WatchCampaigns, domain.SwitchOff)

	snapshot := &meta.Snapshot{
		Test: domain.EntitySnapshot{
			"camp-1": {CampaignName: "so1 - teste", Status: domain.EntityStatusActive, CPP: 150},
		},
		Regular: domain.EntitySnapshot{},
	}

	m.coordinator.EXPECT().TryAcquire(gomock.Any(), "act_123").Return(true, nil)
	m.fetcher.EXPECT().
		FetchSnapshot(gomock.Any(), "act_123", "token-abc", gomock.Any()).
		Return(snapshot, nil)

	// O snapshot recém-buscado é persistido antes de qualquer mudança de
	// status, e de novo depois com o resultado da verificação
	gomock.InOrder(
		m.scheduleRepo.EXPECT().
			UpdateSnapshot("act_123", gomock.Any(), gomock.Any(), domain.CheckStatusOngoing, gomock.Any(), gomock.Any()).
			Return(nil),
		m.client.EXPECT().
			UpdateEntityStatus(gomock.Any(), "camp-1", "token-abc", domain.EntityStatusPaused).
			Return(nil),
		m.scheduleRepo.EXPECT().
			UpdateSnapshot("act_123", gomock.Any(), gomock.Any(), domain.CheckStatusSuccess, gomock.Any(), gomock.Any()).
			Return(nil),
	)
	m.messenger.EXPECT().Append(gomock.Any(), 42, "act_123", gomock.Any()).Times(3)
	m.coordinator.EXPECT().Release(gomock.Any(), "act_123")
	m.coordinator.EXPECT().DrainNext(gomock.Any(), "act_123").Return(nil, false)

	err := runner.Run(context.Background(), trigger)
	require.NoError(t, err)
}

func TestRunner_Run_ContaOcupadaEnfileira(t *testing.T) {
	runner, m := newTestRunner(t)
	trigger := testTrigger(domain.WatchCampaigns, domain.SwitchOff)

	m.coordinator.EXPECT().TryAcquire(gomock.Any(), "act_123").Return(false, nil)
	m.coordinator.EXPECT().Enqueue(gomock.Any(), "act_123", trigger).Return(nil)
	m.messenger.EXPECT().Append(gomock.Any(), 42, "act_123", gomock.Any())

	err := runner.Run(context.Background(), trigger)
	assert.NoError(t, err)
}

func TestRunner_Run_FalhaNoFetchRegistraELibera(t *testing.T) {
	runner, m := newTestRunner(t)
	trigger := testTrigger(domain.WatchCampaigns, domain.SwitchOff)

	m.coordinator.EXPECT().TryAcquire(gomock.Any(), "act_123").Return(true, nil)
	m.fetcher.EXPECT().
		FetchSnapshot(gomock.Any(), "act_123", "token-abc", gomock.Any()).
		Return(nil, errors.New("invalid oauth access token"))
	m.messenger.EXPECT().Append(gomock.Any(), 42, "act_123", gomock.Any()).Times(2)
	m.scheduleRepo.EXPECT().
		UpdateBookkeeping("act_123", domain.CheckStatusFailed, gomock.Any(), gomock.Any()).
		Return(nil)

	// O lease é liberado mesmo com falha e a fila ainda é drenada
	m.coordinator.EXPECT().Release(gomock.Any(), "act_123")
	m.coordinator.EXPECT().DrainNext(gomock.Any(), "act_123").Return(nil, false)

	err := runner.Run(context.Background(), trigger)
	assert.NoError(t, err)
}

func TestRunner_Run_LimiarInvalidoPulaVerificacao(t *testing.T) {
	runner, m := newTestRunner(t)
	trigger := testTrigger(domain.WatchCampaigns, domain.SwitchOff)
	trigger.Slot.CPPMetric = "abc"

	m.coordinator.EXPECT().TryAcquire(gomock.Any(), "act_123").Return(true, nil)
	m.messenger.EXPECT().Append(gomock.Any(), 42, "act_123", gomock.Any())
	m.scheduleRepo.EXPECT().
		UpdateBookkeeping("act_123", domain.CheckStatusFailed, gomock.Any(), gomock.Any()).
		Return(nil)
	m.coordinator.EXPECT().Release(gomock.Any(), "act_123")
	m.coordinator.EXPECT().DrainNext(gomock.Any(), "act_123").Return(nil, false)

	err := runner.Run(context.Background(), trigger)
	assert.NoError(t, err)
}

func TestRunner_Run_DrenaPendenciasAposLiberar(t *testing.T) {
	runner, m := newTestRunner(t)
	trigger := testTrigger(domain.WatchCampaigns, domain.SwitchOff)

	queued := testTrigger(domain.WatchCampaigns, domain.SwitchOn)
	queued.Slot.Time = "09:00"

	emptySnapshot := &meta.Snapshot{Test: domain.EntitySnapshot{}, Regular: domain.EntitySnapshot{}}

	// Primeira execução
	m.coordinator.EXPECT().TryAcquire(gomock.Any(), "act_123").Return(true, nil)
	m.fetcher.EXPECT().
		FetchSnapshot(gomock.Any(), "act_123", "token-abc", gomock.Any()).
		Return(emptySnapshot, nil)
	m.scheduleRepo.EXPECT().
		UpdateSnapshot("act_123", gomock.Any(), gomock.Any(), domain.CheckStatusOngoing, gomock.Any(), gomock.Any()).
		Return(nil)
	m.scheduleRepo.EXPECT().
		UpdateSnapshot("act_123", gomock.Any(), gomock.Any(), domain.CheckStatusSuccess, gomock.Any(), gomock.Any()).
		Return(nil)
	m.coordinator.EXPECT().Release(gomock.Any(), "act_123")
	m.coordinator.EXPECT().DrainNext(gomock.Any(), "act_123").Return(&queued, true)

	// Reexecução com o gatilho drenado
	m.coordinator.EXPECT().TryAcquire(gomock.Any(), "act_123").Return(true, nil)
	m.fetcher.EXPECT().
		FetchSnapshot(gomock.Any(), "act_123", "token-abc", gomock.Any()).
		Return(emptySnapshot, nil)
	m.scheduleRepo.EXPECT().
		UpdateSnapshot("act_123", gomock.Any(), gomock.Any(), domain.CheckStatusOngoing, gomock.Any(), gomock.Any()).
		Return(nil)
	m.scheduleRepo.EXPECT().
		UpdateSnapshot("act_123", gomock.Any(), gomock.Any(), domain.CheckStatusSuccess, gomock.Any(), gomock.Any()).
		Return(nil)
	m.coordinator.EXPECT().Release(gomock.Any(), "act_123")
	m.coordinator.EXPECT().DrainNext(gomock.Any(), "act_123").Return(nil, false)

	m.messenger.EXPECT().Append(gomock.Any(), 42, "act_123", gomock.Any()).Times(4)

	err := runner.Run(context.Background(), trigger)
	require.NoError(t, err)
}
