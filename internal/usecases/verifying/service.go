package verifying

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

var ErrNoCredentials = errors.New("no account credentials provided")

const (
	tokenErrorMessage   = "Invalid access token"
	tokenExpiredMessage = "Access token expired"
	accountErrorMessage = "Ad account not accessible with this token"
)

type Verifier interface {
	VerifyAccounts(ctx context.Context, credentials []domain.AccountCredential) ([]domain.VerifiedAccount, error)
}

type Service struct {
	client metaclient.Client
}

func NewService(client metaclient.Client) Verifier {
	return &Service{client: client}
}

// VerifyAccounts valida cada par conta+token junto à plataforma. Tokens
// repetidos são resolvidos uma única vez: o dono do token e suas contas são
// consultados por token, não por credencial.
func (s *Service) VerifyAccounts(ctx context.Context, credentials []domain.AccountCredential) ([]domain.VerifiedAccount, error) {
	if len(credentials) == 0 {
		return nil, ErrNoCredentials
	}

	type tokenInfo struct {
		valid      bool
		errMessage string
		accounts   map[string]struct{}
	}

	byToken := make(map[string]*tokenInfo)

	for _, credential := range credentials {
		if _, done := byToken[credential.AccessToken]; done {
			continue
		}

		info := &tokenInfo{errMessage: tokenErrorMessage, accounts: map[string]struct{}{}}
		byToken[credential.AccessToken] = info

		ownerID, err := s.client.GetTokenOwner(ctx, credential.AccessToken)
		if err != nil {
			var apiErr *metadomain.APIError
			if errors.As(err, &apiErr) {
				if apiErr.IsTokenExpired() {
					info.errMessage = tokenExpiredMessage
				}
				logrus.WithField("platform_error", apiErr.String()).Warn("Token recusado pela plataforma durante a verificação")
				continue
			}
			logrus.WithField("error", err.Error()).Warn("Token recusado pela plataforma durante a verificação")
			continue
		}

		accountIDs, err := s.client.GetAdAccountIDs(ctx, ownerID, credential.AccessToken)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"platform_user_id": ownerID,
				"error":            err.Error(),
			}).Warn("Erro ao listar contas de anúncio do token")
			continue
		}

		info.valid = true
		for _, id := range accountIDs {
			info.accounts[id] = struct{}{}
		}
	}

	results := make([]domain.VerifiedAccount, 0, len(credentials))
	for _, credential := range credentials {
		info := byToken[credential.AccessToken]

		result := domain.VerifiedAccount{
			AdAccountID:       credential.AdAccountID,
			AdAccountStatus:   domain.VerificationStatusVerified,
			AccessTokenStatus: domain.VerificationStatusVerified,
		}

		if !info.valid {
			tokenErr := info.errMessage
			accountErr := accountErrorMessage
			result.AccessTokenStatus = domain.VerificationStatusNotVerified
			result.AccessTokenError = &tokenErr
			result.AdAccountStatus = domain.VerificationStatusNotVerified
			result.AdAccountError = &accountErr
			results = append(results, result)
			continue
		}

		if _, accessible := info.accounts[credential.AdAccountID]; !accessible {
			accountErr := accountErrorMessage
			result.AdAccountStatus = domain.VerificationStatusNotVerified
			result.AdAccountError = &accountErr
		}

		results = append(results, result)
	}

	return results, nil
}
