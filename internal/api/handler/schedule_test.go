package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-autopilot-api/internal/usecases/scheduling"
	"github.com/vfg2006/campaign-autopilot-api/pkg/apiErrors"
)

// Os erros do serviço chegam embrulhados em ScheduleError; a tradução para
// código de API acontece pelo sentinela desembrulhado
func TestHandleScheduleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{
			name:       "agendamento inexistente",
			err:        scheduling.NewScheduleError(scheduling.ErrScheduleNotFound, "act_123", "no schedule"),
			wantCode:   apiErrors.ErrScheduleNotFound,
			wantStatus: 404,
		},
		{
			name:       "duplicata ambígua",
			err:        scheduling.NewScheduleError(scheduling.ErrAmbiguousDuplicate, "act_123", "duplicate time found: 08:00"),
			wantCode:   apiErrors.ErrDuplicateSlot,
			wantStatus: 409,
		},
		{
			name:       "limite de horários",
			err:        scheduling.NewScheduleError(scheduling.ErrSlotLimitExceeded, "act_123", "21 slots"),
			wantCode:   apiErrors.ErrSlotLimit,
			wantStatus: 400,
		},
		{
			name:       "conta de outro usuário",
			err:        scheduling.NewScheduleError(scheduling.ErrAccountClaimed, "act_123", "owned by user 7"),
			wantCode:   apiErrors.ErrAccountClaimed,
			wantStatus: 409,
		},
		{
			name:       "erro de validação sem embrulho",
			err:        scheduling.ErrInvalidTimeFormat,
			wantCode:   apiErrors.ErrInvalidRequest,
			wantStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			handleScheduleError(recorder, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body apiErrors.APIError
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}
