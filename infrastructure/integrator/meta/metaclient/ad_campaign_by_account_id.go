package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/domain"
)

type ResponseAdCampaign struct {
	Data   []metadomain.Campaign `json:"data"`
	Paging metadomain.Paging     `json:"paging"`
}

// GetCampaignsWithAdSets busca as campanhas da conta com os conjuntos
// aninhados em uma única chamada, seguindo a paginação até o fim
func (c *MetaClient) GetCampaignsWithAdSets(ctx context.Context, accountID, accessToken string) ([]metadomain.Campaign, error) {
	baseURL := fmt.Sprintf("%s/act_%s/campaigns", c.Cfg.Meta.URL, accountID)

	params := url.Values{}
	params.Add("fields", "id,name,status,adsets{id,name,status}")

	nextURL := baseURL + "?" + params.Encode()
	campaigns := make([]metadomain.Campaign, 0)

	for page := 0; nextURL != "" && page < c.maxInsightPages; page++ {
		var response ResponseAdCampaign
		if err := c.doGet(ctx, nextURL, accessToken, &response); err != nil {
			return nil, err
		}

		campaigns = append(campaigns, response.Data...)
		nextURL = response.Paging.Next
	}

	return campaigns, nil
}
