package metaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

// UpdateEntityStatus muda o status de veiculação de uma campanha ou conjunto
func (c *MetaClient) UpdateEntityStatus(ctx context.Context, entityID, accessToken string, status domain.EntityStatus) error {
	url := fmt.Sprintf("%s/%s", c.Cfg.Meta.URL, entityID)

	payload, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

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
		return metadomain.NewAPIError(errEnvelope.Error)
	}

	if resp.StatusCode != http.StatusOK {
		return &metadomain.APIError{
			Message: fmt.Sprintf("unexpected status %s", resp.Status),
			Code:    resp.StatusCode,
		}
	}

	return nil
}
