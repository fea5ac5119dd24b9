package domain

import "time"

// CampaignType classifica a campanha conforme a palavra-chave do nome (so1/so2)
type CampaignType string

const (
	CampaignTypeTest    CampaignType = "TEST"
	CampaignTypeRegular CampaignType = "REGULAR"
)

// WatchTarget define qual nível de entidade o slot observa
type WatchTarget string

const (
	WatchCampaigns WatchTarget = "Campaigns"
	WatchAdSets    WatchTarget = "AdSets"
)

// OnOff define a ação desejada quando o CPP cruza o limiar
type OnOff string

const (
	SwitchOn  OnOff = "ON"
	SwitchOff OnOff = "OFF"
)

// SlotStatus é a pausa administrativa do próprio slot, independente do status das entidades
type SlotStatus string

const (
	SlotStatusRunning SlotStatus = "Running"
	SlotStatusPaused  SlotStatus = "Paused"
)

// CheckStatus registra o resultado da última execução do pipeline
type CheckStatus string

const (
	CheckStatusSuccess CheckStatus = "Success"
	CheckStatusFailed  CheckStatus = "Failed"
	CheckStatusOngoing CheckStatus = "Ongoing"
)

// ScheduleSlot é uma regra agendada: horário + escopo + limiar + ação
type ScheduleSlot struct {
	Time         string       `json:"time"`
	CampaignType CampaignType `json:"campaign_type"`
	Watch        WatchTarget  `json:"what_to_watch"`
	CPPMetric    string       `json:"cpp_metric"`
	OnOff        OnOff        `json:"on_off"`
	Status       SlotStatus   `json:"status"`
}

// SlotIdentity é a chave de deduplicação de um slot.
// cpp_metric e on_off são atributos, não fazem parte da identidade.
type SlotIdentity struct {
	Time         string
	CampaignType CampaignType
	Watch        WatchTarget
}

func (s ScheduleSlot) Identity() SlotIdentity {
	return SlotIdentity{
		Time:         s.Time,
		CampaignType: s.CampaignType,
		Watch:        s.Watch,
	}
}

// AccountSchedule é a linha de campaigns_scheduled: os slots de uma conta
// de anúncio mais o snapshot de entidades e os campos de bookkeeping
type AccountSchedule struct {
	AdAccountID         string                  `json:"ad_account_id"`
	UserID              int                     `json:"user_id"`
	AccessToken         string                  `json:"access_token"`
	ScheduleData        map[string]ScheduleSlot `json:"schedule_data"`
	AddedAt             time.Time               `json:"added_at"`
	TestCampaignData    EntitySnapshot          `json:"test_campaign_data"`
	RegularCampaignData EntitySnapshot          `json:"regular_campaign_data"`
	LastTimeChecked     time.Time               `json:"last_time_checked"`
	LastCheckStatus     CheckStatus             `json:"last_check_status"`
	LastCheckMessage    string                  `json:"last_check_message"`
}

// Trigger é o pedido de execução do pipeline para uma conta/slot,
// produzido pelo dispatcher de horários ou drenado da fila de pendências
type Trigger struct {
	UserID      int          `json:"user_id"`
	AdAccountID string       `json:"ad_account_id"`
	AccessToken string       `json:"access_token"`
	Slot        ScheduleSlot `json:"slot"`
}

// DateRange delimita o período dos insights usados no cálculo do CPP
type DateRange struct {
	Since string `json:"since"`
	Until string `json:"until"`
}
