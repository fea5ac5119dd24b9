package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/locker"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
	"github.com/vfg2006/campaign-autopilot-api/internal/pipeline"
	"github.com/vfg2006/campaign-autopilot-api/internal/usecases/scheduling"
	"github.com/vfg2006/campaign-autopilot-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-autopilot-api/pkg/middleware"
)

type DeleteScheduleRequest struct {
	AdAccountID string `json:"ad_account_id"`
}

type RunScheduleRequest struct {
	Time         string `json:"time"`
	CampaignType string `json:"campaign_type"`
	Watch        string `json:"what_to_watch"`
}

// AddSchedule cria ou acrescenta horários ao agendamento da conta
func AddSchedule(service scheduling.ScheduleService) http.HandlerFunc {
	return scheduleMutation(service.AddSlots)
}

// AppendSchedule é a variante estrita: exige agendamento e rejeita colisões
func AppendSchedule(service scheduling.ScheduleService) http.HandlerFunc {
	return scheduleMutation(service.AppendSlots)
}

func scheduleMutation(apply func(context.Context, *domain.AddScheduleRequest) (*domain.AccountSchedule, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.AddScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		req.UserID = claims.UserID

		schedule, err := apply(r.Context(), &req)
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(schedule)
	}
}

// EditSchedule altera campos de um horário existente, localizado pelo time
func EditSchedule(service scheduling.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.EditSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		req.UserID = claims.UserID

		schedule, err := service.EditSlot(r.Context(), &req)
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(schedule)
	}
}

// RemoveScheduleSlot apaga um horário identificado pela tripla completa
func RemoveScheduleSlot(service scheduling.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.RemoveSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		req.UserID = claims.UserID

		schedule, err := service.RemoveSlot(r.Context(), &req)
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(schedule)
	}
}

// DeleteSchedule apaga o agendamento inteiro da conta
func DeleteSchedule(service scheduling.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req DeleteScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if err := service.DeleteSchedule(r.Context(), claims.UserID, req.AdAccountID); err != nil {
			handleScheduleError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetSchedule retorna a linha completa da conta: slots, snapshot e bookkeeping
func GetSchedule(service scheduling.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("account_id")

		schedule, err := service.GetSchedule(accountID)
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(schedule)
	}
}

// GetScheduleMessages retorna o histórico de mensagens de progresso da conta
func GetScheduleMessages(messenger locker.Messenger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("account_id")

		messages, err := messenger.Messages(r.Context(), claims.UserID, accountID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"ad_account_id": accountID,
				"error":         err.Error(),
			}).Error("Erro ao ler mensagens de progresso")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler mensagens de progresso", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"ad_account_id": accountID,
			"messages":      messages,
		})
	}
}

// RunSchedule dispara manualmente o pipeline para um horário da conta,
// sem esperar o tick do dispatcher
func RunSchedule(service scheduling.ScheduleService, pool *pipeline.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("account_id")

		var req RunScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		schedule, err := service.GetSchedule(accountID)
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		if schedule.UserID != claims.UserID {
			apiErrors.WriteError(w, apiErrors.ErrScheduleNotFound, "Agendamento não encontrado para este usuário", nil)
			return
		}

		target := domain.SlotIdentity{
			Time:         req.Time,
			CampaignType: domain.CampaignType(req.CampaignType),
			Watch:        domain.WatchTarget(req.Watch),
		}

		var slot *domain.ScheduleSlot
		for _, candidate := range schedule.ScheduleData {
			if candidate.Identity() == target {
				s := candidate
				slot = &s
				break
			}
		}

		if slot == nil {
			apiErrors.WriteError(w, apiErrors.ErrSlotNotFound, "Horário não encontrado no agendamento", nil)
			return
		}

		// O gatilho roda em background; o request não espera o pipeline
		pool.Submit(context.WithoutCancel(r.Context()), domain.Trigger{
			UserID:      schedule.UserID,
			AdAccountID: schedule.AdAccountID,
			AccessToken: schedule.AccessToken,
			Slot:        *slot,
		})

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"status": string(domain.CheckStatusOngoing),
		})
	}
}

// handleScheduleError traduz os erros do serviço de agendamento para a API
func handleScheduleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduling.ErrScheduleNotFound):
		apiErrors.WriteError(w, apiErrors.ErrScheduleNotFound, err.Error(), nil)

	case errors.Is(err, scheduling.ErrSlotNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSlotNotFound, err.Error(), nil)

	case errors.Is(err, scheduling.ErrDuplicateSlot),
		errors.Is(err, scheduling.ErrAmbiguousDuplicate),
		errors.Is(err, scheduling.ErrDuplicateInRequest):
		apiErrors.WriteError(w, apiErrors.ErrDuplicateSlot, err.Error(), nil)

	case errors.Is(err, scheduling.ErrSlotLimitExceeded):
		apiErrors.WriteError(w, apiErrors.ErrSlotLimit, err.Error(), nil)

	case errors.Is(err, scheduling.ErrAccountClaimed):
		apiErrors.WriteError(w, apiErrors.ErrAccountClaimed, err.Error(), nil)

	case errors.Is(err, scheduling.ErrUserNotFound):
		apiErrors.WriteError(w, apiErrors.ErrUserNotFound, err.Error(), nil)

	case errors.Is(err, scheduling.ErrMissingRequiredFields),
		errors.Is(err, scheduling.ErrInvalidTimeFormat),
		errors.Is(err, scheduling.ErrInvalidCampaignType),
		errors.Is(err, scheduling.ErrInvalidWatch),
		errors.Is(err, scheduling.ErrInvalidOnOff),
		errors.Is(err, scheduling.ErrInvalidSlotStatus),
		errors.Is(err, scheduling.ErrNoNewSlots):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar agendamento", nil)
	}
}
