package metadomain

type AdSet struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type AdSetList struct {
	Data   []AdSet `json:"data"`
	Paging Paging  `json:"paging"`
}

type Campaign struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Status string    `json:"status"`
	AdSets AdSetList `json:"adsets"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next"`
}

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é uma linha de insights em nível de campanha ou de conjunto.
// A API preenche campaign_id ou adset_id conforme o level solicitado.
type InsightRow struct {
	CampaignID string   `json:"campaign_id"`
	AdSetID    string   `json:"adset_id"`
	Spend      string   `json:"spend"`
	Actions    []Action `json:"actions"`
}

// EntityID retorna o identificador da linha conforme o nível consultado
func (r InsightRow) EntityID(level string) string {
	if level == "adset" {
		return r.AdSetID
	}
	return r.CampaignID
}
