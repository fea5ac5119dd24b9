package metaclient

import (
	"context"
	"fmt"
)

type responseMe struct {
	ID string `json:"id"`
}

type responseAdAccounts struct {
	Data []struct {
		AccountID string `json:"account_id"`
	} `json:"data"`
}

// GetTokenOwner resolve o usuário da plataforma dono do access token
func (c *MetaClient) GetTokenOwner(ctx context.Context, accessToken string) (string, error) {
	url := fmt.Sprintf("%s/me", c.Cfg.Meta.URL)

	var response responseMe
	if err := c.doGet(ctx, url, accessToken, &response); err != nil {
		return "", err
	}

	return response.ID, nil
}

// GetAdAccountIDs lista as contas de anúncio associadas ao usuário da plataforma
func (c *MetaClient) GetAdAccountIDs(ctx context.Context, platformUserID, accessToken string) ([]string, error) {
	url := fmt.Sprintf("%s/%s/adaccounts", c.Cfg.Meta.URL, platformUserID)

	var response responseAdAccounts
	if err := c.doGet(ctx, url, accessToken, &response); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(response.Data))
	for _, acc := range response.Data {
		ids = append(ids, acc.AccountID)
	}

	return ids, nil
}
