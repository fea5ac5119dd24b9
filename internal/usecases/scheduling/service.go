package scheduling

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/locker"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/repository"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

// MaxSlotsPerAccount é o limite de regras agendadas por conta de anúncio
const MaxSlotsPerAccount = 20

type ScheduleService interface {
	AddSlots(ctx context.Context, req *domain.AddScheduleRequest) (*domain.AccountSchedule, error)
	AppendSlots(ctx context.Context, req *domain.AddScheduleRequest) (*domain.AccountSchedule, error)
	EditSlot(ctx context.Context, req *domain.EditSlotRequest) (*domain.AccountSchedule, error)
	RemoveSlot(ctx context.Context, req *domain.RemoveSlotRequest) (*domain.AccountSchedule, error)
	DeleteSchedule(ctx context.Context, userID int, adAccountID string) error
	GetSchedule(adAccountID string) (*domain.AccountSchedule, error)
}

type Service struct {
	scheduleRepo repository.ScheduleRepository
	userRepo     repository.UserRepository
	coordinator  locker.Coordinator
}

func NewService(
	scheduleRepo repository.ScheduleRepository,
	userRepo repository.UserRepository,
	coordinator locker.Coordinator,
) ScheduleService {
	return &Service{
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		coordinator:  coordinator,
	}
}

// AddSlots cria o agendamento da conta ou acrescenta slots ao existente.
// Duplicatas exatas (mesma identidade, mesmo cpp_metric e on_off) são
// descartadas em silêncio; duplicatas com atributos divergentes invalidam
// a chamada inteira, pois o chamador deveria usar EditSlot.
func (s *Service) AddSlots(ctx context.Context, req *domain.AddScheduleRequest) (*domain.AccountSchedule, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.scheduleRepo.GetByAccountID(req.AdAccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	if existing == nil {
		return s.createSchedule(req)
	}

	if existing.UserID != req.UserID {
		return nil, NewScheduleError(ErrAccountClaimed, req.AdAccountID,
			fmt.Sprintf("ad_account_id %s is already handled by user %d", req.AdAccountID, existing.UserID))
	}

	existingByIdentity := identityIndex(existing.ScheduleData)

	newSlots := make([]domain.ScheduleSlot, 0, len(req.Slots))
	for _, slot := range req.Slots {
		key, found := existingByIdentity[slot.Identity()]
		if !found {
			newSlots = append(newSlots, slot)
			continue
		}

		stored := existing.ScheduleData[key]
		if stored.CPPMetric != slot.CPPMetric || stored.OnOff != slot.OnOff {
			return nil, NewScheduleError(ErrAmbiguousDuplicate, req.AdAccountID,
				fmt.Sprintf("duplicate time found: %s with same campaign_type and watch", slot.Time))
		}
		// Duplicata exata: descartada em silêncio
	}

	if len(newSlots) == 0 {
		return nil, ErrNoNewSlots
	}

	if len(existing.ScheduleData)+len(newSlots) > MaxSlotsPerAccount {
		return nil, NewScheduleError(ErrSlotLimitExceeded, req.AdAccountID,
			fmt.Sprintf("user %d cannot schedule more than %d times", req.UserID, MaxSlotsPerAccount))
	}

	merged := cloneSlots(existing.ScheduleData)
	next := len(merged) + 1
	for _, slot := range newSlots {
		merged[slotKey(next)] = slot
		next++
	}

	if err := s.scheduleRepo.UpdateSlots(req.AdAccountID, merged); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	existing.ScheduleData = merged

	logrus.WithFields(logrus.Fields{
		"ad_account_id": req.AdAccountID,
		"added":         len(newSlots),
		"total":         len(merged),
	}).Info("Novos horários adicionados ao agendamento")

	return existing, nil
}

// AppendSlots é a variante estrita: exige agendamento existente e trata
// qualquer colisão de identidade como erro, sem tolerância a duplicatas
func (s *Service) AppendSlots(ctx context.Context, req *domain.AddScheduleRequest) (*domain.AccountSchedule, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.scheduleRepo.GetByAccountID(req.AdAccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	if existing == nil {
		return nil, NewScheduleError(ErrScheduleNotFound, req.AdAccountID,
			"please create a schedule first")
	}

	if existing.UserID != req.UserID {
		return nil, NewScheduleError(ErrAccountClaimed, req.AdAccountID,
			fmt.Sprintf("ad_account_id %s is already handled by user %d", req.AdAccountID, existing.UserID))
	}

	existingByIdentity := identityIndex(existing.ScheduleData)

	for _, slot := range req.Slots {
		if _, found := existingByIdentity[slot.Identity()]; found {
			return nil, NewScheduleError(ErrDuplicateSlot, req.AdAccountID,
				fmt.Sprintf("duplicate time %s already exists with the same campaign_type and watch", slot.Time))
		}
	}

	if len(existing.ScheduleData)+len(req.Slots) > MaxSlotsPerAccount {
		return nil, NewScheduleError(ErrSlotLimitExceeded, req.AdAccountID,
			fmt.Sprintf("user %d cannot schedule more than %d times", req.UserID, MaxSlotsPerAccount))
	}

	merged := cloneSlots(existing.ScheduleData)
	next := len(merged) + 1
	for _, slot := range req.Slots {
		merged[slotKey(next)] = slot
		next++
	}

	if err := s.scheduleRepo.UpdateSlots(req.AdAccountID, merged); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	existing.ScheduleData = merged
	return existing, nil
}

// EditSlot localiza o slot apenas pelo horário (primeiro que casar) e aplica
// o subconjunto de alterações pedido, revalidando cada campo alterado
func (s *Service) EditSlot(ctx context.Context, req *domain.EditSlotRequest) (*domain.AccountSchedule, error) {
	if req.AdAccountID == "" || req.UserID == 0 || req.Time == "" {
		return nil, ErrMissingRequiredFields
	}

	if err := s.ensureUserExists(req.UserID); err != nil {
		return nil, err
	}

	schedule, err := s.getOwnedSchedule(req.AdAccountID, req.UserID)
	if err != nil {
		return nil, err
	}

	keyToEdit := ""
	for _, key := range orderedKeys(schedule.ScheduleData) {
		if schedule.ScheduleData[key].Time == req.Time {
			keyToEdit = key
			break
		}
	}

	if keyToEdit == "" {
		return nil, NewScheduleError(ErrSlotNotFound, req.AdAccountID,
			fmt.Sprintf("no schedule entry found with time %s", req.Time))
	}

	slot := schedule.ScheduleData[keyToEdit]

	if req.NewTime != nil {
		if _, err := time.Parse("15:04", *req.NewTime); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, *req.NewTime)
		}
		slot.Time = *req.NewTime
	}

	if req.NewOnOff != nil {
		onOff := domain.OnOff(*req.NewOnOff)
		if onOff != domain.SwitchOn && onOff != domain.SwitchOff {
			return nil, ErrInvalidOnOff
		}
		slot.OnOff = onOff
	}

	if req.NewCPPMetric != nil {
		slot.CPPMetric = *req.NewCPPMetric
	}

	if req.NewWatch != nil {
		watch := domain.WatchTarget(*req.NewWatch)
		if watch != domain.WatchCampaigns && watch != domain.WatchAdSets {
			return nil, ErrInvalidWatch
		}
		slot.Watch = watch
	}

	if req.NewStatus != nil {
		status := domain.SlotStatus(*req.NewStatus)
		if status != domain.SlotStatusRunning && status != domain.SlotStatusPaused {
			return nil, ErrInvalidSlotStatus
		}
		slot.Status = status
	}

	updated := cloneSlots(schedule.ScheduleData)
	updated[keyToEdit] = slot

	if err := s.scheduleRepo.UpdateSlots(req.AdAccountID, updated); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	schedule.ScheduleData = updated
	return schedule, nil
}

// RemoveSlot apaga o slot que casa com a tripla completa e renumera as
// chaves restantes para manter a sequência densa time1..timeN
func (s *Service) RemoveSlot(ctx context.Context, req *domain.RemoveSlotRequest) (*domain.AccountSchedule, error) {
	if req.AdAccountID == "" || req.UserID == 0 {
		return nil, ErrMissingRequiredFields
	}

	if req.Time == "" || req.CampaignType == "" || req.Watch == "" {
		return nil, ErrMissingRequiredFields
	}

	if err := s.ensureUserExists(req.UserID); err != nil {
		return nil, err
	}

	schedule, err := s.getOwnedSchedule(req.AdAccountID, req.UserID)
	if err != nil {
		return nil, err
	}

	target := domain.SlotIdentity{
		Time:         req.Time,
		CampaignType: domain.CampaignType(req.CampaignType),
		Watch:        domain.WatchTarget(req.Watch),
	}

	keyToRemove := ""
	for _, key := range orderedKeys(schedule.ScheduleData) {
		if schedule.ScheduleData[key].Identity() == target {
			keyToRemove = key
			break
		}
	}

	if keyToRemove == "" {
		return nil, NewScheduleError(ErrSlotNotFound, req.AdAccountID,
			fmt.Sprintf("schedule entry with time %s, campaign_type %s, and watch %s not found",
				req.Time, req.CampaignType, req.Watch))
	}

	// Renumera preservando a ordem relativa original
	renumbered := make(map[string]domain.ScheduleSlot, len(schedule.ScheduleData)-1)
	next := 1
	for _, key := range orderedKeys(schedule.ScheduleData) {
		if key == keyToRemove {
			continue
		}
		renumbered[slotKey(next)] = schedule.ScheduleData[key]
		next++
	}

	if err := s.scheduleRepo.UpdateSlots(req.AdAccountID, renumbered); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	schedule.ScheduleData = renumbered
	return schedule, nil
}

// DeleteSchedule apaga a linha da conta e expurga lease, fila de pendências
// e mensagens de progresso associadas no Redis
func (s *Service) DeleteSchedule(ctx context.Context, userID int, adAccountID string) error {
	if userID == 0 || adAccountID == "" {
		return ErrMissingRequiredFields
	}

	if err := s.ensureUserExists(userID); err != nil {
		return err
	}

	if _, err := s.getOwnedSchedule(adAccountID, userID); err != nil {
		return err
	}

	if err := s.scheduleRepo.Delete(adAccountID, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	if err := s.coordinator.PurgeAccount(ctx, userID, adAccountID); err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_account_id": adAccountID,
			"user_id":       userID,
			"error":         err.Error(),
		}).Error("Erro ao expurgar chaves da conta no Redis")
	}

	logrus.WithFields(logrus.Fields{
		"ad_account_id": adAccountID,
		"user_id":       userID,
	}).Info("Agendamento removido")

	return nil
}

func (s *Service) GetSchedule(adAccountID string) (*domain.AccountSchedule, error) {
	schedule, err := s.scheduleRepo.GetByAccountID(adAccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	return schedule, nil
}

// createSchedule monta a primeira linha da conta com as chaves time1..timeN
func (s *Service) createSchedule(req *domain.AddScheduleRequest) (*domain.AccountSchedule, error) {
	if len(req.Slots) > MaxSlotsPerAccount {
		return nil, NewScheduleError(ErrSlotLimitExceeded, req.AdAccountID,
			fmt.Sprintf("user %d cannot schedule more than %d times", req.UserID, MaxSlotsPerAccount))
	}

	slots := make(map[string]domain.ScheduleSlot, len(req.Slots))
	for i, slot := range req.Slots {
		slots[slotKey(i+1)] = slot
	}

	now := time.Now()
	schedule := &domain.AccountSchedule{
		AdAccountID:         req.AdAccountID,
		UserID:              req.UserID,
		AccessToken:         req.AccessToken,
		ScheduleData:        slots,
		AddedAt:             now,
		TestCampaignData:    domain.EntitySnapshot{},
		RegularCampaignData: domain.EntitySnapshot{},
		LastTimeChecked:     now,
		LastCheckStatus:     domain.CheckStatusSuccess,
		LastCheckMessage:    "Scheduled",
	}

	if err := s.scheduleRepo.Create(schedule); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	logrus.WithFields(logrus.Fields{
		"ad_account_id": req.AdAccountID,
		"slots":         len(slots),
	}).Info("Novo agendamento criado")

	return schedule, nil
}

// validateRequest valida campos obrigatórios, formato e enums de cada slot
// e duplicidade de identidade dentro do próprio lote
func (s *Service) validateRequest(req *domain.AddScheduleRequest) error {
	if req.AdAccountID == "" || req.UserID == 0 || req.AccessToken == "" || len(req.Slots) == 0 {
		return ErrMissingRequiredFields
	}

	seen := make(map[domain.SlotIdentity]struct{}, len(req.Slots))

	for i := range req.Slots {
		slot := &req.Slots[i]

		if _, err := time.Parse("15:04", slot.Time); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidTimeFormat, slot.Time)
		}

		if slot.CampaignType != domain.CampaignTypeTest && slot.CampaignType != domain.CampaignTypeRegular {
			return fmt.Errorf("%w (time %s)", ErrInvalidCampaignType, slot.Time)
		}

		if slot.Watch != domain.WatchCampaigns && slot.Watch != domain.WatchAdSets {
			return fmt.Errorf("%w (time %s)", ErrInvalidWatch, slot.Time)
		}

		if slot.OnOff != domain.SwitchOn && slot.OnOff != domain.SwitchOff {
			return fmt.Errorf("%w (time %s)", ErrInvalidOnOff, slot.Time)
		}

		if slot.Status == "" {
			slot.Status = domain.SlotStatusRunning
		} else if slot.Status != domain.SlotStatusRunning && slot.Status != domain.SlotStatusPaused {
			return fmt.Errorf("%w (time %s)", ErrInvalidSlotStatus, slot.Time)
		}

		identity := slot.Identity()
		if _, dup := seen[identity]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateInRequest, slot.Time)
		}
		seen[identity] = struct{}{}
	}

	return s.ensureUserExists(req.UserID)
}

func (s *Service) ensureUserExists(userID int) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	if user == nil {
		return NewScheduleError(ErrUserNotFound, "",
			fmt.Sprintf("user with id %d not found", userID))
	}
	return nil
}

func (s *Service) getOwnedSchedule(adAccountID string, userID int) (*domain.AccountSchedule, error) {
	schedule, err := s.scheduleRepo.GetByAccountID(adAccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	if schedule == nil || schedule.UserID != userID {
		return nil, NewScheduleError(ErrScheduleNotFound, adAccountID,
			fmt.Sprintf("no schedule found for ad_account_id %s linked to user %d", adAccountID, userID))
	}

	return schedule, nil
}

func slotKey(n int) string {
	return fmt.Sprintf("time%d", n)
}

// orderedKeys devolve as chaves time1..timeN na ordem numérica. Chaves fora
// do padrão, se existirem, vêm por último em ordem lexicográfica.
func orderedKeys(slots map[string]domain.ScheduleSlot) []string {
	keys := make([]string, 0, len(slots))
	for key := range slots {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		ni, iOK := slotNumber(keys[i])
		nj, jOK := slotNumber(keys[j])
		if iOK && jOK {
			return ni < nj
		}
		if iOK != jOK {
			return iOK
		}
		return keys[i] < keys[j]
	})

	return keys
}

func slotNumber(key string) (int, bool) {
	trimmed := strings.TrimPrefix(key, "time")
	if trimmed == key || trimmed == "" {
		return 0, false
	}

	n := 0
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}

	return n, true
}

func cloneSlots(slots map[string]domain.ScheduleSlot) map[string]domain.ScheduleSlot {
	cloned := make(map[string]domain.ScheduleSlot, len(slots))
	for key, slot := range slots {
		cloned[key] = slot
	}
	return cloned
}

func identityIndex(slots map[string]domain.ScheduleSlot) map[domain.SlotIdentity]string {
	index := make(map[domain.SlotIdentity]string, len(slots))
	for key, slot := range slots {
		index[slot.Identity()] = key
	}
	return index
}
