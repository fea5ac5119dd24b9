package scheduling

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lockermocks "github.com/vfg2006/campaign-autopilot-api/infrastructure/locker/mocks"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockScheduleRepository, *mocks.MockUserRepository, *lockermocks.MockCoordinator) {
	ctrl := gomock.NewController(t)
	scheduleRepo := mocks.NewMockScheduleRepository(ctrl)
	userRepo := mocks.NewMockUserRepository(ctrl)
	coordinator := lockermocks.NewMockCoordinator(ctrl)

	service := &Service{
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		coordinator:  coordinator,
	}

	return service, scheduleRepo, userRepo, coordinator
}

func testUser() *domain.User {
	return &domain.User{ID: 42, Name: "Maria", Email: "maria@example.com"}
}

func testSlot(timeOfDay string) domain.ScheduleSlot {
	return domain.ScheduleSlot{
		Time:         timeOfDay,
		CampaignType: domain.CampaignTypeTest,
		Watch:        domain.WatchCampaigns,
		CPPMetric:    "100",
		OnOff:        domain.SwitchOn,
		Status:       domain.SlotStatusRunning,
	}
}

func TestService_AddSlots_NovoAgendamento(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	req := &domain.AddScheduleRequest{
		AdAccountID: "act_123",
		UserID:      42,
		AccessToken: "token-abc",
		Slots:       []domain.ScheduleSlot{testSlot("08:00"), testSlot("14:30")},
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(nil, nil)

	var created *domain.AccountSchedule
	scheduleRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(schedule *domain.AccountSchedule) error {
			created = schedule
			return nil
		})

	result, err := service.AddSlots(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)

	// Chaves densas time1..timeN
	require.Len(t, created.ScheduleData, 2)
	assert.Equal(t, "08:00", created.ScheduleData["time1"].Time)
	assert.Equal(t, "14:30", created.ScheduleData["time2"].Time)
	assert.Equal(t, domain.CheckStatusSuccess, created.LastCheckStatus)
	assert.Equal(t, "Scheduled", created.LastCheckMessage)
}

func TestService_AddSlots_DuplicataExataDescartada(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	existing := &domain.AccountSchedule{
		AdAccountID: "act_123",
		UserID:      42,
		ScheduleData: map[string]domain.ScheduleSlot{
			"time1": testSlot("08:00"),
		},
	}

	req := &domain.AddScheduleRequest{
		AdAccountID: "act_123",
		UserID:      42,
		AccessToken: "token-abc",
		Slots:       []domain.ScheduleSlot{testSlot("08:00"), testSlot("20:00")},
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(existing, nil)

	var persisted map[string]domain.ScheduleSlot
	scheduleRepo.EXPECT().
		UpdateSlots("act_123", gomock.Any()).
		DoAndReturn(func(_ string, slots map[string]domain.ScheduleSlot) error {
			persisted = slots
			return nil
		})

	result, err := service.AddSlots(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)

	// A duplicata exata de 08:00 foi descartada; apenas 20:00 foi adicionado
	require.Len(t, persisted, 2)
	assert.Equal(t, "08:00", persisted["time1"].Time)
	assert.Equal(t, "20:00", persisted["time2"].Time)
}

func TestService_AddSlots_DuplicataAmbigua(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	existing := &domain.AccountSchedule{
		AdAccountID: "act_123",
		UserID:      42,
		ScheduleData: map[string]domain.ScheduleSlot{
			"time1": testSlot("08:00"),
		},
	}

	conflicting := testSlot("08:00")
	conflicting.CPPMetric = "250" // mesmo horário, limiar diferente

	req := &domain.AddScheduleRequest{
		AdAccountID: "act_123",
		UserID:      42,
		AccessToken: "token-abc",
		Slots:       []domain.ScheduleSlot{conflicting},
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(existing, nil)

	_, err := service.AddSlots(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousDuplicate)
}

func TestService_AddSlots_SomenteDuplicatas(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	existing := &domain.AccountSchedule{
		AdAccountID: "act_123",
		UserID:      42,
		ScheduleData: map[string]domain.ScheduleSlot{
			"time1": testSlot("08:00"),
		},
	}

	req := &domain.AddScheduleRequest{
		AdAccountID: "act_123",
		UserID:      42,
		AccessToken: "token-abc",
		Slots:       []domain.ScheduleSlot{testSlot("08:00")},
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(existing, nil)

	_, err := service.AddSlots(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoNewSlots)
}

func TestService_AddSlots_ContaDeOutroUsuario(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	existing := &domain.AccountSchedule{
		AdAccountID:  "act_123",
		UserID:       99,
		ScheduleData: map[string]domain.ScheduleSlot{"time1": testSlot("08:00")},
	}

	req := &domain.AddScheduleRequest{
		AdAccountID: "act_123",
		UserID:      42,
		AccessToken: "token-abc",
		Slots:       []domain.ScheduleSlot{testSlot("09:00")},
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(existing, nil)

	_, err := service.AddSlots(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccountClaimed)
}

func TestService_AddSlots_LimiteDeSlots(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	slots := make(map[string]domain.ScheduleSlot, MaxSlotsPerAccount)
	for i := 1; i <= MaxSlotsPerAccount; i++ {
		slots[fmt.Sprintf("time%d", i)] = testSlot(fmt.Sprintf("%02d:15", i))
	}

	existing := &domain.AccountSchedule{
		AdAccountID:  "act_123",
		UserID:       42,
		ScheduleData: slots,
	}

	req := &domain.AddScheduleRequest{
		AdAccountID: "act_123",
		UserID:      42,
		AccessToken: "token-abc",
		Slots:       []domain.ScheduleSlot{testSlot("23:59")},
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(existing, nil)

	_, err := service.AddSlots(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotLimitExceeded)
}

func TestService_AddSlots_Validacao(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(slot *domain.ScheduleSlot)
		wantErr error
	}{
		{
			name:    "horário fora do formato HH:MM",
			mutate:  func(slot *domain.ScheduleSlot) { slot.Time = "25:99" },
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name:    "campaign_type desconhecido",
			mutate:  func(slot *domain.ScheduleSlot) { slot.CampaignType = "experimental" },
			wantErr: ErrInvalidCampaignType,
		},
		{
			name:    "watch desconhecido",
			mutate:  func(slot *domain.ScheduleSlot) { slot.Watch = "ads" },
			wantErr: ErrInvalidWatch,
		},
		{
			name:    "on_off desconhecido",
			mutate:  func(slot *domain.ScheduleSlot) { slot.OnOff = "MAYBE" },
			wantErr: ErrInvalidOnOff,
		},
		{
			name:    "status desconhecido",
			mutate:  func(slot *domain.ScheduleSlot) { slot.Status = "SLEEPING" },
			wantErr: ErrInvalidSlotStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, _ := newTestService(t)

			slot := testSlot("08:00")
			tt.mutate(&slot)

			req := &domain.AddScheduleRequest{
				AdAccountID: "act_123",
				UserID:      42,
				AccessToken: "token-abc",
				Slots:       []domain.ScheduleSlot{slot},
			}

			_, err := service.AddSlots(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_AddSlots_DuplicataNoProprioLote(t *testing.T) {
	service, _, _, _ := newTestService(t)

	req := &domain.AddScheduleRequest{
		AdAccountID: "act_123",
		UserID:      42,
		AccessToken: "token-abc",
		Slots:       []domain.ScheduleSlot{testSlot("08:00"), testSlot("08:00")},
	}

	_, err := service.AddSlots(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateInRequest)
}

func TestService_AddSlots_StatusPadraoRunning(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	slot := testSlot("08:00")
	slot.Status = ""

	req := &domain.AddScheduleRequest{
		AdAccountID: "act_123",
		UserID:      42,
		AccessToken: "token-abc",
		Slots:       []domain.ScheduleSlot{slot},
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(nil, nil)

	var created *domain.AccountSchedule
	scheduleRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(schedule *domain.AccountSchedule) error {
			created = schedule
			return nil
		})

	_, err := service.AddSlots(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusRunning, created.ScheduleData["time1"].Status)
}

func TestService_AppendSlots_ColisaoFalha(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	existing := &domain.AccountSchedule{
		AdAccountID:  "act_123",
		UserID:       42,
		ScheduleData: map[string]domain.ScheduleSlot{"time1": testSlot("08:00")},
	}

	req := &domain.AddScheduleRequest{
		AdAccountID: "act_123",
		UserID:      42,
		AccessToken: "token-abc",
		Slots:       []domain.ScheduleSlot{testSlot("08:00")},
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(existing, nil)

	// Mesmo a duplicata exata é rejeitada na variante estrita
	_, err := service.AppendSlots(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateSlot)
}

func TestService_AppendSlots_SemAgendamento(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	req := &domain.AddScheduleRequest{
		AdAccountID: "act_123",
		UserID:      42,
		AccessToken: "token-abc",
		Slots:       []domain.ScheduleSlot{testSlot("08:00")},
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(nil, nil)

	_, err := service.AppendSlots(context.Background(), req)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestService_EditSlot(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	existing := &domain.AccountSchedule{
		AdAccountID: "act_123",
		UserID:      42,
		ScheduleData: map[string]domain.ScheduleSlot{
			"time1": testSlot("08:00"),
			"time2": testSlot("14:00"),
		},
	}

	newCPP := "300"
	newOnOff := "OFF"
	req := &domain.EditSlotRequest{
		AdAccountID:  "act_123",
		UserID:       42,
		Time:         "14:00",
		NewCPPMetric: &newCPP,
		NewOnOff:     &newOnOff,
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(existing, nil)

	var persisted map[string]domain.ScheduleSlot
	scheduleRepo.EXPECT().
		UpdateSlots("act_123", gomock.Any()).
		DoAndReturn(func(_ string, slots map[string]domain.ScheduleSlot) error {
			persisted = slots
			return nil
		})

	_, err := service.EditSlot(context.Background(), req)
	require.NoError(t, err)

	edited := persisted["time2"]
	assert.Equal(t, "300", string(edited.CPPMetric))
	assert.Equal(t, domain.SwitchOff, edited.OnOff)
	// time1 intocado
	assert.Equal(t, "100", string(persisted["time1"].CPPMetric))
}

func TestService_EditSlot_HorarioInexistente(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	existing := &domain.AccountSchedule{
		AdAccountID:  "act_123",
		UserID:       42,
		ScheduleData: map[string]domain.ScheduleSlot{"time1": testSlot("08:00")},
	}

	req := &domain.EditSlotRequest{
		AdAccountID: "act_123",
		UserID:      42,
		Time:        "23:00",
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(existing, nil)

	_, err := service.EditSlot(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_RemoveSlot_RenumeraChaves(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	slot2 := testSlot("14:00")
	slot3 := testSlot("20:00")

	existing := &domain.AccountSchedule{
		AdAccountID: "act_123",
		UserID:      42,
		ScheduleData: map[string]domain.ScheduleSlot{
			"time1": testSlot("08:00"),
			"time2": slot2,
			"time3": slot3,
		},
	}

	req := &domain.RemoveSlotRequest{
		AdAccountID:  "act_123",
		UserID:       42,
		Time:         "08:00",
		CampaignType: string(domain.CampaignTypeTest),
		Watch:        string(domain.WatchCampaigns),
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(existing, nil)

	var persisted map[string]domain.ScheduleSlot
	scheduleRepo.EXPECT().
		UpdateSlots("act_123", gomock.Any()).
		DoAndReturn(func(_ string, slots map[string]domain.ScheduleSlot) error {
			persisted = slots
			return nil
		})

	_, err := service.RemoveSlot(context.Background(), req)
	require.NoError(t, err)

	// time2/time3 viram time1/time2 mantendo a ordem
	require.Len(t, persisted, 2)
	assert.Equal(t, "14:00", persisted["time1"].Time)
	assert.Equal(t, "20:00", persisted["time2"].Time)
	_, hasTime3 := persisted["time3"]
	assert.False(t, hasTime3)
}

func TestService_RemoveSlot_TriplaIncompleta(t *testing.T) {
	service, scheduleRepo, userRepo, _ := newTestService(t)

	existing := &domain.AccountSchedule{
		AdAccountID:  "act_123",
		UserID:       42,
		ScheduleData: map[string]domain.ScheduleSlot{"time1": testSlot("08:00")},
	}

	req := &domain.RemoveSlotRequest{
		AdAccountID:  "act_123",
		UserID:       42,
		Time:         "08:00",
		CampaignType: string(domain.CampaignTypeRegular), // não casa com o slot TEST
		Watch:        string(domain.WatchCampaigns),
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(existing, nil)

	_, err := service.RemoveSlot(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_DeleteSchedule_ExpurgaRedis(t *testing.T) {
	service, scheduleRepo, userRepo, coordinator := newTestService(t)

	existing := &domain.AccountSchedule{
		AdAccountID:  "act_123",
		UserID:       42,
		ScheduleData: map[string]domain.ScheduleSlot{"time1": testSlot("08:00")},
	}

	userRepo.EXPECT().GetUserByID(42).Return(testUser(), nil)
	scheduleRepo.EXPECT().GetByAccountID("act_123").Return(existing, nil)
	scheduleRepo.EXPECT().Delete("act_123", 42).Return(nil)
	coordinator.EXPECT().PurgeAccount(gomock.Any(), 42, "act_123").Return(nil)

	err := service.DeleteSchedule(context.Background(), 42, "act_123")
	assert.NoError(t, err)
}

func TestOrderedKeys(t *testing.T) {
	slots := map[string]domain.ScheduleSlot{
		"time10": testSlot("10:00"),
		"time2":  testSlot("02:00"),
		"time1":  testSlot("01:00"),
	}

	// Ordem numérica, não lexicográfica
	assert.Equal(t, []string{"time1", "time2", "time10"}, orderedKeys(slots))
}
