package repository

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/toptiermen/platform/internal/missions"
	"github.com/toptiermen/platform/internal/model"
)

// MissionRepo is the primary mission store backed by the
// user_missions table.  It implements missions.Store so it can be the
// head of the fallback chain.  Toggle wraps the mission update, the
// XP balance change and the XP transaction row in a single
// transaction so a crash cannot leave XP and mission state disagreeing.
type MissionRepo struct{ DB *sql.DB }

func NewMissionRepo(db *sql.DB) *MissionRepo { return &MissionRepo{DB: db} }

var _ missions.Store = (*MissionRepo)(nil)

const missionColumns = "id,user_id,title,frequency_type,COALESCE(last_completion_date,''),xp_reward,progress,created_at"

func scanMission(scan func(dest ...any) error) (model.Mission, error) {
	var m model.Mission
	err := scan(&m.ID, &m.UserID, &m.Title, &m.FrequencyType,
		&m.LastCompletionDate, &m.XPReward, &m.Progress, &m.CreatedAt)
	return m, err
}

func (r *MissionRepo) List(ctx context.Context, userID uint64) ([]model.Mission, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+missionColumns+" FROM user_missions WHERE user_id=? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Mission
	for rows.Next() {
		m, err := scanMission(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MissionRepo) Create(ctx context.Context, m model.Mission) (model.Mission, error) {
	if m.FrequencyType == "" {
		m.FrequencyType = model.FrequencyDaily
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_missions (user_id, title, frequency_type, xp_reward, progress) VALUES (?,?,?,?,?)",
		m.UserID, m.Title, m.FrequencyType, m.XPReward, m.Progress)
	if err != nil {
		return model.Mission{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Mission{}, err
	}
	m.ID = uint64(id)
	// Query back the full row to populate defaults and timestamps.
	return scanMission(r.DB.QueryRowContext(ctx,
		"SELECT "+missionColumns+" FROM user_missions WHERE id=? LIMIT 1", m.ID).Scan)
}

func (r *MissionRepo) Toggle(ctx context.Context, userID, missionID uint64) (missions.ToggleResult, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return missions.ToggleResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	m, err := scanMission(tx.QueryRowContext(ctx,
		"SELECT "+missionColumns+" FROM user_missions WHERE id=? AND user_id=? FOR UPDATE",
		missionID, userID).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return missions.ToggleResult{}, missions.ErrNotFound
		}
		return missions.ToggleResult{}, err
	}

	completed, delta := missions.ApplyToggle(&m, missions.Today())

	var lastCompletion interface{}
	if m.LastCompletionDate != "" {
		lastCompletion = m.LastCompletionDate
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE user_missions SET last_completion_date=? WHERE id=?",
		lastCompletion, m.ID); err != nil {
		return missions.ToggleResult{}, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO xp_balances (user_id, total_xp) VALUES (?,?) ON DUPLICATE KEY UPDATE total_xp = total_xp + VALUES(total_xp)",
		userID, delta); err != nil {
		return missions.ToggleResult{}, err
	}
	reason := "mission_completed"
	if !completed {
		reason = "mission_uncompleted"
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO xp_transactions (user_id, amount, reason, reference) VALUES (?,?,?,?)",
		userID, delta, reason, strconv.FormatUint(m.ID, 10)); err != nil {
		return missions.ToggleResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return missions.ToggleResult{}, err
	}
	return missions.ToggleResult{Mission: m, Completed: completed, XPEarned: delta}, nil
}

func (r *MissionRepo) Delete(ctx context.Context, userID, missionID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_missions WHERE id=? AND user_id=?", missionID, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return missions.ErrNotFound
	}
	return nil
}
