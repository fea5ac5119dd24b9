package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

func TestDueTriggers(t *testing.T) {
	schedules := []*domain.AccountSchedule{
		{
			AdAccountID: "act_111",
			UserID:      1,
			AccessToken: "token-1",
			ScheduleData: map[string]domain.ScheduleSlot{
				"time1": {Time: "08:00", CampaignType: domain.CampaignTypeTest, Watch: domain.WatchCampaigns, OnOff: domain.SwitchOff, CPPMetric: "100", Status: domain.SlotStatusRunning},
				"time2": {Time: "09:00", CampaignType: domain.CampaignTypeTest, Watch: domain.WatchCampaigns, OnOff: domain.SwitchOn, CPPMetric: "100", Status: domain.SlotStatusRunning},
			},
		},
		{
			AdAccountID: "act_222",
			UserID:      2,
			AccessToken: "token-2",
			ScheduleData: map[string]domain.ScheduleSlot{
				// Mesmo horário, mas pausado: não dispara
				"time1": {Time: "08:00", CampaignType: domain.CampaignTypeRegular, Watch: domain.WatchAdSets, OnOff: domain.SwitchOff, CPPMetric: "200", Status: domain.SlotStatusPaused},
			},
		},
		{
			AdAccountID: "act_333",
			UserID:      3,
			AccessToken: "token-3",
			ScheduleData: map[string]domain.ScheduleSlot{
				"time1": {Time: "08:00", CampaignType: domain.CampaignTypeRegular, Watch: domain.WatchCampaigns, OnOff: domain.SwitchOn, CPPMetric: "50", Status: domain.SlotStatusRunning},
			},
		},
	}

	triggers := dueTriggers(schedules, "08:00")
	require.Len(t, triggers, 2)

	accounts := []string{triggers[0].AdAccountID, triggers[1].AdAccountID}
	assert.ElementsMatch(t, []string{"act_111", "act_333"}, accounts)

	for _, trigger := range triggers {
		assert.Equal(t, "08:00", trigger.Slot.Time)
	}
}

func TestDueTriggers_SemSlotNoMinuto(t *testing.T) {
	schedules := []*domain.AccountSchedule{
		{
			AdAccountID: "act_111",
			ScheduleData: map[string]domain.ScheduleSlot{
				"time1": {Time: "08:00", Status: domain.SlotStatusRunning},
			},
		},
	}

	assert.Empty(t, dueTriggers(schedules, "23:59"))
}
