package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-autopilot-api/internal/config"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

// InsightLevel é a granularidade dos insights consultados
type InsightLevel string

const (
	LevelCampaign InsightLevel = "campaign"
	LevelAdSet    InsightLevel = "adset"
)

type Client interface {
	GetCampaignsWithAdSets(ctx context.Context, accountID, accessToken string) ([]metadomain.Campaign, error)
	GetInsights(ctx context.Context, accountID, accessToken string, level InsightLevel, dateRange *domain.DateRange) ([]metadomain.InsightRow, error)
	UpdateEntityStatus(ctx context.Context, entityID, accessToken string, status domain.EntityStatus) error
	GetTokenOwner(ctx context.Context, accessToken string) (string, error)
	GetAdAccountIDs(ctx context.Context, platformUserID, accessToken string) ([]string, error)
}

type MetaClient struct {
	Cfg        *config.Config
	httpClient *http.Client

	// limite de páginas seguidas via paging.next por consulta de insights
	maxInsightPages int
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.Pipeline.RequestTimeoutSeconds) * time.Second

	maxPages := cfg.Pipeline.MaxInsightPages
	if maxPages <= 0 {
		maxPages = 50
	}

	return &MetaClient{
		Cfg:             cfg,
		httpClient:      &http.Client{Timeout: timeout},
		maxInsightPages: maxPages,
	}
}

// doGet executa a requisição e decodifica o envelope de erro da API do Meta.
// Erros da plataforma viram *metadomain.APIError com a mensagem upstream preservada.
func (c *MetaClient) doGet(ctx context.Context, url, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return &metadomain.APIError{Message: err.Error(), Type: "RequestException"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var errEnvelope metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errEnvelope); err == nil && errEnvelope.Error != nil {
		apiErr := metadomain.NewAPIError(errEnvelope.Error)
		logrus.WithFields(logrus.Fields{
			"code":    apiErr.Code,
			"type":    apiErr.Type,
			"message": apiErr.Message,
		}).Error("Erro retornado pela API do Meta")
		return apiErr
	}

	if resp.StatusCode != http.StatusOK {
		return &metadomain.APIError{
			Message: fmt.Sprintf("unexpected status %s", resp.Status),
			Code:    resp.StatusCode,
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return err
	}

	return nil
}
