package model

import "time"

// Registration flow steps.  A flow advances strictly in this order;
// "rejected" and "done" are terminal.
const (
	StepIntro         = "intro"
	StepQuestionnaire = "questionnaire"
	StepPackage       = "package"
	StepRegister      = "register"
	StepPayment       = "payment"
	StepDone          = "done"
	StepRejected      = "rejected"
)

// RegistrationFlow persists the state of one prospect's multi-step
// signup so it survives reloads.  Answers is the questionnaire answer
// set serialized as JSON.
//
// Fields:
//  ID          – uuid assigned when the flow starts.
//  CurrentStep – one of the Step* constants above.
//  Answers     – questionnaire answers as a JSON object.
//  Score       – total questionnaire score once submitted.
//  PackageID   – chosen membership package (empty until selected).
//  UserID      – created user once the register step completes.
//  PaymentURL  – hosted checkout URL once payment was initiated.
//  CreatedAt   – when the flow started.
//  UpdatedAt   – last transition time.
type RegistrationFlow struct {
	ID          string    // registration_flows.id (uuid)
	CurrentStep string    // registration_flows.current_step
	Answers     string    // registration_flows.answers (JSON)
	Score       int       // registration_flows.score
	PackageID   string    // registration_flows.package_id
	UserID      *uint64   // registration_flows.user_id (nullable)
	PaymentURL  string    // registration_flows.payment_url
	CreatedAt   time.Time // registration_flows.created_at
	UpdatedAt   time.Time // registration_flows.updated_at
}
