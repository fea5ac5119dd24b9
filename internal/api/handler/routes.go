package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-autopilot-api/infrastructure/locker"
	"github.com/vfg2006/campaign-autopilot-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-autopilot-api/internal/pipeline"
	"github.com/vfg2006/campaign-autopilot-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-autopilot-api/internal/usecases/scheduling"
	"github.com/vfg2006/campaign-autopilot-api/internal/usecases/verifying"
	"github.com/vfg2006/campaign-autopilot-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Schedules(
	service scheduling.ScheduleService,
	messenger locker.Messenger,
	pool *pipeline.Pool,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/schedules",
			Method:      http.MethodPost,
			Handler:     AddSchedule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules/append",
			Method:      http.MethodPost,
			Handler:     AppendSchedule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules",
			Method:      http.MethodPut,
			Handler:     EditSchedule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules/slot",
			Method:      http.MethodDelete,
			Handler:     RemoveScheduleSlot(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules",
			Method:      http.MethodDelete,
			Handler:     DeleteSchedule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules/:account_id",
			Method:      http.MethodGet,
			Handler:     GetSchedule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules/:account_id/messages",
			Method:      http.MethodGet,
			Handler:     GetScheduleMessages(messenger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules/:account_id/run",
			Method:      http.MethodPost,
			Handler:     RunSchedule(service, pool),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func AccountVerification(service verifying.Verifier) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts/verify",
			Method:      http.MethodPost,
			Handler:     VerifyAccounts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
