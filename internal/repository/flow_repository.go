package repository

import (
	"context"
	"database/sql"

	"github.com/toptiermen/platform/internal/model"
)

type FlowRepo struct{ DB *sql.DB }

func NewFlowRepo(db *sql.DB) *FlowRepo { return &FlowRepo{DB: db} }

// Create inserts a fresh registration flow at its starting step.
func (r *FlowRepo) Create(ctx context.Context, f model.RegistrationFlow) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO registration_flows (id, current_step, answers) VALUES (?,?,?)",
		f.ID, f.CurrentStep, f.Answers)
	return err
}

// Get loads a flow by id.
func (r *FlowRepo) Get(ctx context.Context, id string) (model.RegistrationFlow, error) {
	var (
		f      model.RegistrationFlow
		userID sql.NullInt64
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,current_step,COALESCE(answers,'{}'),score,COALESCE(package_id,''),user_id,COALESCE(payment_url,''),created_at,updated_at FROM registration_flows WHERE id=? LIMIT 1",
		id).Scan(&f.ID, &f.CurrentStep, &f.Answers, &f.Score, &f.PackageID,
		&userID, &f.PaymentURL, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return model.RegistrationFlow{}, err
	}
	if userID.Valid {
		v := uint64(userID.Int64)
		f.UserID = &v
	}
	return f, nil
}

// Save persists the mutable parts of a flow after a transition.
func (r *FlowRepo) Save(ctx context.Context, f model.RegistrationFlow) error {
	var userID interface{}
	if f.UserID != nil {
		userID = *f.UserID
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE registration_flows SET current_step=?, answers=?, score=?, package_id=?, user_id=?, payment_url=? WHERE id=?",
		f.CurrentStep, f.Answers, f.Score, f.PackageID, userID, f.PaymentURL, f.ID)
	return err
}
