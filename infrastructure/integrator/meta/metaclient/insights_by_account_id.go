package metaclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
	"github.com/vfg2006/campaign-autopilot-api/pkg/utils"
)

type ResponseInsights struct {
	Data   []metadomain.InsightRow `json:"data"`
	Paging metadomain.Paging       `json:"paging"`
}

// GetInsights busca spend e actions no nível informado (campaign ou adset),
// seguindo paging.next até esgotar ou atingir o limite de páginas configurado
func (c *MetaClient) GetInsights(
	ctx context.Context,
	accountID, accessToken string,
	level InsightLevel,
	dateRange *domain.DateRange,
) ([]metadomain.InsightRow, error) {
	baseURL := fmt.Sprintf("%s/act_%s/insights", c.Cfg.Meta.URL, accountID)

	params := url.Values{}
	params.Add("level", string(level))
	params.Add("fields", fmt.Sprintf("%s_id,actions,spend", level))

	if dateRange != nil {
		if _, err := utils.ParseDate(dateRange.Since); err != nil {
			return nil, fmt.Errorf("invalid since date %q: %w", dateRange.Since, err)
		}
		if _, err := utils.ParseDate(dateRange.Until); err != nil {
			return nil, fmt.Errorf("invalid until date %q: %w", dateRange.Until, err)
		}

		timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", dateRange.Since, dateRange.Until)
		params.Add("time_range", timeRange)
	}

	nextURL := baseURL + "?" + params.Encode()
	rows := make([]metadomain.InsightRow, 0)

	page := 0
	for nextURL != "" {
		if page >= c.maxInsightPages {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"level":      level,
				"max_pages":  c.maxInsightPages,
			}).Warn("Limite de páginas de insights atingido, mantendo linhas coletadas")
			break
		}

		var response ResponseInsights
		if err := c.doGet(ctx, nextURL, accessToken, &response); err != nil {
			return nil, err
		}

		rows = append(rows, response.Data...)
		nextURL = response.Paging.Next
		page++
	}

	return rows, nil
}
