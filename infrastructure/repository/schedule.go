package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-autopilot-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-autopilot-api/internal/domain"
)

const schedulesTable = "campaigns_scheduled"

type ScheduleRepository interface {
	GetByAccountID(adAccountID string) (*domain.AccountSchedule, error)
	ListAll() ([]*domain.AccountSchedule, error)
	Create(schedule *domain.AccountSchedule) error
	UpdateSlots(adAccountID string, slots map[string]domain.ScheduleSlot) error
	UpdateSnapshot(adAccountID string, test, regular domain.EntitySnapshot, status domain.CheckStatus, message string, checkedAt time.Time) error
	UpdateBookkeeping(adAccountID string, status domain.CheckStatus, message string, checkedAt time.Time) error
	Delete(adAccountID string, userID int) error
}

type scheduleRepository struct {
	conn *postgres.Connection
}

func NewScheduleRepository(conn *postgres.Connection) ScheduleRepository {
	return &scheduleRepository{
		conn: conn,
	}
}

func (r *scheduleRepository) GetByAccountID(adAccountID string) (*domain.AccountSchedule, error) {
	scheduleSQL, scheduleArgs, err := squirrel.
		Select("ad_account_id", "user_id", "access_token", "schedule_data", "added_at",
			"test_campaign_data", "regular_campaign_data",
			"last_time_checked", "last_check_status", "last_check_message").
		From(schedulesTable).
		Where(squirrel.Eq{"ad_account_id": adAccountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(scheduleSQL, scheduleArgs...)

	schedule, err := deserializeSchedule(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "error fetching schedule row")
	}

	return schedule, nil
}

func (r *scheduleRepository) ListAll() ([]*domain.AccountSchedule, error) {
	scheduleSQL, _, err := squirrel.
		Select("ad_account_id", "user_id", "access_token", "schedule_data", "added_at",
			"test_campaign_data", "regular_campaign_data",
			"last_time_checked", "last_check_status", "last_check_message").
		From(schedulesTable).
		OrderBy("ad_account_id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(scheduleSQL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "error listing schedules")
	}
	defer rows.Close()

	schedules := make([]*domain.AccountSchedule, 0)

	for rows.Next() {
		schedule, err := deserializeSchedule(rows.Scan)
		if err != nil {
			return nil, errors.Wrap(err, "error scanning schedule row")
		}
		schedules = append(schedules, schedule)
	}

	return schedules, rows.Err()
}

func (r *scheduleRepository) Create(schedule *domain.AccountSchedule) error {
	slotsJSON, err := json.Marshal(schedule.ScheduleData)
	if err != nil {
		return err
	}

	testJSON, err := json.Marshal(schedule.TestCampaignData)
	if err != nil {
		return err
	}

	regularJSON, err := json.Marshal(schedule.RegularCampaignData)
	if err != nil {
		return err
	}

	scheduleSQL, scheduleArgs, err := squirrel.
		Insert(schedulesTable).
		Columns("ad_account_id", "user_id", "access_token", "schedule_data", "added_at",
			"test_campaign_data", "regular_campaign_data",
			"last_time_checked", "last_check_status", "last_check_message").
		Values(schedule.AdAccountID, schedule.UserID, schedule.AccessToken, slotsJSON, schedule.AddedAt,
			testJSON, regularJSON,
			schedule.LastTimeChecked, schedule.LastCheckStatus, schedule.LastCheckMessage).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(scheduleSQL, scheduleArgs...); err != nil {
		return errors.Wrap(err, "error inserting schedule row")
	}

	return nil
}

// UpdateSlots troca o mapa de slots por inteiro. O commit é atômico:
// ou o mapa novo inteiro entra, ou nada muda.
func (r *scheduleRepository) UpdateSlots(adAccountID string, slots map[string]domain.ScheduleSlot) error {
	slotsJSON, err := json.Marshal(slots)
	if err != nil {
		return err
	}

	return r.exec(squirrel.
		Update(schedulesTable).
		Set("schedule_data", slotsJSON).
		Where(squirrel.Eq{"ad_account_id": adAccountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql())
}

// UpdateSnapshot substitui os dois mapas do snapshot e os campos de
// bookkeeping em um único UPDATE
func (r *scheduleRepository) UpdateSnapshot(
	adAccountID string,
	test, regular domain.EntitySnapshot,
	status domain.CheckStatus,
	message string,
	checkedAt time.Time,
) error {
	testJSON, err := json.Marshal(test)
	if err != nil {
		return err
	}

	regularJSON, err := json.Marshal(regular)
	if err != nil {
		return err
	}

	return r.exec(squirrel.
		Update(schedulesTable).
		Set("test_campaign_data", testJSON).
		Set("regular_campaign_data", regularJSON).
		Set("last_time_checked", checkedAt).
		Set("last_check_status", status).
		Set("last_check_message", message).
		Where(squirrel.Eq{"ad_account_id": adAccountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql())
}

func (r *scheduleRepository) UpdateBookkeeping(
	adAccountID string,
	status domain.CheckStatus,
	message string,
	checkedAt time.Time,
) error {
	return r.exec(squirrel.
		Update(schedulesTable).
		Set("last_time_checked", checkedAt).
		Set("last_check_status", status).
		Set("last_check_message", message).
		Where(squirrel.Eq{"ad_account_id": adAccountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql())
}

func (r *scheduleRepository) Delete(adAccountID string, userID int) error {
	return r.exec(squirrel.
		Delete(schedulesTable).
		Where(squirrel.Eq{"ad_account_id": adAccountID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql())
}

func (r *scheduleRepository) exec(query string, args []interface{}, err error) error {
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return errors.Wrap(err, "error executing schedule statement")
	}

	return nil
}

type scanFunc func(dest ...any) error

func deserializeSchedule(scan scanFunc) (*domain.AccountSchedule, error) {
	schedule := &domain.AccountSchedule{}

	var slotsJSON, testJSON, regularJSON []byte
	var lastTimeChecked sql.NullTime
	var lastCheckMessage sql.NullString

	if err := scan(
		&schedule.AdAccountID,
		&schedule.UserID,
		&schedule.AccessToken,
		&slotsJSON,
		&schedule.AddedAt,
		&testJSON,
		&regularJSON,
		&lastTimeChecked,
		&schedule.LastCheckStatus,
		&lastCheckMessage,
	); err != nil {
		return nil, err
	}

	if lastTimeChecked.Valid {
		schedule.LastTimeChecked = lastTimeChecked.Time
	}
	schedule.LastCheckMessage = lastCheckMessage.String

	if err := json.Unmarshal(slotsJSON, &schedule.ScheduleData); err != nil {
		return nil, errors.Wrap(err, "error decoding schedule_data column")
	}

	if len(testJSON) > 0 {
		if err := json.Unmarshal(testJSON, &schedule.TestCampaignData); err != nil {
			return nil, errors.Wrap(err, "error decoding test_campaign_data column")
		}
	}

	if len(regularJSON) > 0 {
		if err := json.Unmarshal(regularJSON, &schedule.RegularCampaignData); err != nil {
			return nil, errors.Wrap(err, "error decoding regular_campaign_data column")
		}
	}

	return schedule, nil
}
