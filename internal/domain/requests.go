package domain

// AddScheduleRequest cria ou estende o agendamento de uma conta de anúncio
type AddScheduleRequest struct {
	AdAccountID string         `json:"ad_account_id"`
	UserID      int            `json:"user_id"`
	AccessToken string         `json:"access_token"`
	Slots       []ScheduleSlot `json:"schedule_data"`
}

// EditSlotRequest altera um subconjunto de campos do slot localizado pelo horário
type EditSlotRequest struct {
	AdAccountID  string  `json:"ad_account_id"`
	UserID       int     `json:"user_id"`
	Time         string  `json:"time"`
	NewTime      *string `json:"new_time"`
	NewOnOff     *string `json:"new_on_off"`
	NewCPPMetric *string `json:"new_cpp_metric"`
	NewWatch     *string `json:"new_what_to_watch"`
	NewStatus    *string `json:"new_status"`
}

// RemoveSlotRequest remove o slot que casa com a tripla de identidade completa
type RemoveSlotRequest struct {
	AdAccountID  string `json:"ad_account_id"`
	UserID       int    `json:"user_id"`
	Time         string `json:"time"`
	CampaignType string `json:"campaign_type"`
	Watch        string `json:"what_to_watch"`
}
