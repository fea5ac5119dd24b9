package meta

import (
	"strconv"

	metadomain "github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-autopilot-api/pkg/utils"
)

// Ação de conversão usada como denominador do CPP, com o sinônimo aceito
// quando a API reporta a variante omni
const (
	checkoutActionType      = "onsite_conversion.initiate_checkout"
	checkoutActionTypeAlias = "omni_initiated_checkout"
)

// CPPFromRow calcula spend / initiate_checkout para uma linha de insights.
// Denominador zero ou ausente resulta em CPP 0, nunca em erro.
func CPPFromRow(row metadomain.InsightRow) float64 {
	spend, err := strconv.ParseFloat(row.Spend, 64)
	if err != nil {
		spend = 0
	}

	actions := make(map[string]float64, len(row.Actions))
	for _, action := range row.Actions {
		value, err := strconv.ParseFloat(action.Value, 64)
		if err != nil {
			continue
		}
		actions[action.ActionType] = value
	}

	checkouts, ok := actions[checkoutActionType]
	if !ok {
		checkouts = actions[checkoutActionTypeAlias]
	}

	if checkouts <= 0 {
		return 0
	}

	return utils.RoundWithTwoDecimalPlace(spend / checkouts)
}

// CPPByEntity indexa o CPP calculado por id de entidade no nível informado
func CPPByEntity(rows []metadomain.InsightRow, level metaclient.InsightLevel) map[string]float64 {
	cpp := make(map[string]float64, len(rows))

	for _, row := range rows {
		entityID := row.EntityID(string(level))
		if entityID == "" {
			continue
		}
		cpp[entityID] = CPPFromRow(row)
	}

	return cpp
}
