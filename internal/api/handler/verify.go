package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
	"github.com/vfg2006/campaign-autopilot-api/internal/usecases/verifying"
	"github.com/vfg2006/campaign-autopilot-api/pkg/apiErrors"
)

type VerifyAccountsRequest struct {
	Accounts []domain.AccountCredential `json:"accounts"`
}

// VerifyAccounts valida pares conta+token junto à plataforma antes de o
// usuário criar um agendamento com eles
func VerifyAccounts(service verifying.Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyAccountsRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		results, err := service.VerifyAccounts(r.Context(), req.Accounts)
		if err != nil {
			if errors.Is(err, verifying.ErrNoCredentials) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhuma credencial enviada para verificação", nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao verificar contas na plataforma", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"accounts": results,
		})
	}
}
