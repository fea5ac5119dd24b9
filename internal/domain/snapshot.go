package domain

// EntityStatus é o status de veiculação de uma campanha ou conjunto na plataforma
type EntityStatus string

const (
	EntityStatusActive EntityStatus = "ACTIVE"
	EntityStatusPaused EntityStatus = "PAUSED"
)

// AdSetData é a visão cacheada de um conjunto de anúncios dentro do snapshot.
// As tags JSON seguem o formato persistido na coluna test/regular_campaign_data.
type AdSetData struct {
	Name   string       `json:"NAME"`
	Status EntityStatus `json:"STATUS"`
	CPP    float64      `json:"CPP"`
}

// CampaignData é a visão cacheada de uma campanha com seus conjuntos aninhados
type CampaignData struct {
	CampaignName string                `json:"campaign_name"`
	Status       EntityStatus          `json:"STATUS"`
	CPP          float64               `json:"CPP"`
	AdSets       map[string]*AdSetData `json:"ADSETS"`
}

// EntitySnapshot mapeia campaign_id -> dados da campanha. O snapshot é
// substituído por inteiro a cada fetch, nunca mesclado campo a campo.
type EntitySnapshot map[string]*CampaignData
