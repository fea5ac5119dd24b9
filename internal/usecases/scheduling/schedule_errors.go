package scheduling

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de agendamento
var (
	// Erros de validação
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidTimeFormat     = errors.New("invalid time format, use HH:MM")
	ErrInvalidCampaignType   = errors.New("invalid campaign_type, use 'TEST' or 'REGULAR'")
	ErrInvalidWatch          = errors.New("invalid what_to_watch, use 'Campaigns' or 'AdSets'")
	ErrInvalidOnOff          = errors.New("invalid on_off, use 'ON' or 'OFF'")
	ErrInvalidSlotStatus     = errors.New("invalid status, use 'Running' or 'Paused'")
	ErrDuplicateInRequest    = errors.New("duplicate time with same campaign_type and watch in request")
	ErrDuplicateSlot         = errors.New("duplicate slot with same campaign_type and watch")
	ErrAmbiguousDuplicate    = errors.New("slot already exists with different cpp_metric or on_off, update the existing slot instead")
	ErrNoNewSlots            = errors.New("no new scheduled times to add")
	ErrSlotLimitExceeded     = errors.New("cannot schedule more than 20 times for this ad account")
	ErrAccountClaimed        = errors.New("ad account is already handled by another user")

	// Erros de existência
	ErrScheduleNotFound = errors.New("no schedule found for this ad account")
	ErrSlotNotFound     = errors.New("schedule slot not found")
	ErrUserNotFound     = errors.New("user not found")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
)

// ScheduleError é um erro com contexto adicional para agendamentos
type ScheduleError struct {
	Err         error
	AdAccountID string
	Details     string
}

func (e *ScheduleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}

func NewScheduleError(err error, adAccountID, details string) *ScheduleError {
	return &ScheduleError{
		Err:         err,
		AdAccountID: adAccountID,
		Details:     details,
	}
}
