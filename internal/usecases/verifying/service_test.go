package verifying

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_VerifyAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	service := NewService(client)

	credentials := []domain.AccountCredential{
		{AdAccountID: "111", AccessToken: "token-a"},
		{AdAccountID: "222", AccessToken: "token-a"}, // mesmo token, resolvido uma vez só
		{AdAccountID: "333", AccessToken: "token-b"},
	}

	// token-a é válido e enxerga apenas a conta 111
	client.EXPECT().GetTokenOwner(gomock.Any(), "token-a").Return("fbuser-1", nil)
	client.EXPECT().GetAdAccountIDs(gomock.Any(), "fbuser-1", "token-a").Return([]string{"111"}, nil)

	// token-b é recusado pela plataforma
	client.EXPECT().GetTokenOwner(gomock.Any(), "token-b").Return("", errors.New("invalid oauth token"))

	results, err := service.VerifyAccounts(context.Background(), credentials)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, domain.VerificationStatusVerified, results[0].AdAccountStatus)
	assert.Equal(t, domain.VerificationStatusVerified, results[0].AccessTokenStatus)
	assert.Nil(t, results[0].AdAccountError)

	// conta 222 não está entre as contas do token-a
	assert.Equal(t, domain.VerificationStatusNotVerified, results[1].AdAccountStatus)
	assert.Equal(t, domain.VerificationStatusVerified, results[1].AccessTokenStatus)
	require.NotNil(t, results[1].AdAccountError)

	// token-b inválido derruba conta e token
	assert.Equal(t, domain.VerificationStatusNotVerified, results[2].AccessTokenStatus)
	assert.Equal(t, domain.VerificationStatusNotVerified, results[2].AdAccountStatus)
	require.NotNil(t, results[2].AccessTokenError)
}

func TestService_VerifyAccounts_TokenExpirado(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	service := NewService(client)

	credentials := []domain.AccountCredential{
		{AdAccountID: "111", AccessToken: "token-velho"},
	}

	client.EXPECT().GetTokenOwner(gomock.Any(), "token-velho").
		Return("", &metadomain.APIError{Message: "Error validating access token", Type: "OAuthException", Code: 190})

	results, err := service.VerifyAccounts(context.Background(), credentials)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, domain.VerificationStatusNotVerified, results[0].AccessTokenStatus)
	require.NotNil(t, results[0].AccessTokenError)
	assert.Equal(t, "Access token expired", *results[0].AccessTokenError)
}

func TestService_VerifyAccounts_SemCredenciais(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	service := NewService(client)

	_, err := service.VerifyAccounts(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoCredentials)
}
