// Package onboarding drives the multi-step registration flow as an
// explicit state machine: intro → questionnaire → package → register
// → payment → done, with rejected as the failure terminal.  State is
// serializable (model.RegistrationFlow) and persisted between steps,
// so a prospect can resume after a reload.
package onboarding

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/toptiermen/platform/internal/model"
)

// AdmissionThreshold is the minimum questionnaire score that admits a
// prospect to package selection.
const AdmissionThreshold = 15

// ErrWrongStep is returned when a transition is requested out of
// order, e.g. choosing a package before the questionnaire was scored.
var ErrWrongStep = errors.New("step not allowed from current state")

// ErrUnknownPackage is returned for a package id outside the catalog.
var ErrUnknownPackage = errors.New("unknown package")

// Question is one questionnaire entry.  Options maps an answer key to
// the points it scores.
type Question struct {
	ID      string         `json:"id"`
	Prompt  string         `json:"prompt"`
	Options map[string]int `json:"options"`
}

// Questions is the qualifying questionnaire.  The point values are
// hand-scored: stronger commitment answers score higher.
var Questions = []Question{
	{ID: "goal", Prompt: "What is your main goal for the next 12 months?", Options: map[string]int{
		"none": 0, "curious": 1, "improve": 3, "transform": 5,
	}},
	{ID: "commitment", Prompt: "How many hours per week can you commit?", Options: map[string]int{
		"lt1": 0, "1-3": 2, "3-6": 4, "6plus": 5,
	}},
	{ID: "accountability", Prompt: "Do you want to be held accountable by the brotherhood?", Options: map[string]int{
		"no": 0, "maybe": 2, "yes": 5,
	}},
	{ID: "training", Prompt: "How often do you currently train?", Options: map[string]int{
		"never": 0, "sometimes": 2, "weekly": 3, "daily": 5,
	}},
	{ID: "investment", Prompt: "Are you ready to invest in yourself?", Options: map[string]int{
		"no": 0, "unsure": 2, "yes": 5,
	}},
}

// Package is a membership tier a prospect can buy.
type Package struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	PriceMajor  float64 `json:"price"`
	Description string  `json:"description"`
}

// Packages is the sellable catalog.  Prelaunch is the discounted tier
// offered before full launch.
var Packages = []Package{
	{ID: "prelaunch", Title: "Prelaunch Founder", PriceMajor: 29, Description: "Discounted founding membership"},
	{ID: "monthly", Title: "Top Tier Monthly", PriceMajor: 47, Description: "Month-to-month membership"},
	{ID: "yearly", Title: "Top Tier Yearly", PriceMajor: 470, Description: "Annual membership, two months free"},
}

// PackageByID looks a package up in the catalog.
func PackageByID(id string) (Package, bool) {
	for _, p := range Packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

// New starts a flow at the intro step.
func New() model.RegistrationFlow {
	now := time.Now().UTC()
	return model.RegistrationFlow{
		ID:          uuid.NewString(),
		CurrentStep: model.StepIntro,
		Answers:     "{}",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Score totals the points for a set of answers.  Unknown questions
// and unknown options score zero.
func Score(answers map[string]string) int {
	total := 0
	for _, q := range Questions {
		if choice, ok := answers[q.ID]; ok {
			total += q.Options[choice]
		}
	}
	return total
}

// SubmitAnswers scores the questionnaire and advances the flow to
// package selection or to the rejected terminal.  Allowed from the
// intro step (the client may submit in one shot) or the questionnaire
// step.
func SubmitAnswers(f *model.RegistrationFlow, answers map[string]string) error {
	if f.CurrentStep != model.StepIntro && f.CurrentStep != model.StepQuestionnaire {
		return ErrWrongStep
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	f.Answers = string(raw)
	f.Score = Score(answers)
	if f.Score >= AdmissionThreshold {
		f.CurrentStep = model.StepPackage
	} else {
		f.CurrentStep = model.StepRejected
	}
	return nil
}

// ChoosePackage records the selected package and advances to the
// register step.
func ChoosePackage(f *model.RegistrationFlow, packageID string) error {
	if f.CurrentStep != model.StepPackage {
		return ErrWrongStep
	}
	if _, ok := PackageByID(packageID); !ok {
		return ErrUnknownPackage
	}
	f.PackageID = packageID
	f.CurrentStep = model.StepRegister
	return nil
}

// AttachUser records the created account and advances to payment.
func AttachUser(f *model.RegistrationFlow, userID uint64) error {
	if f.CurrentStep != model.StepRegister {
		return ErrWrongStep
	}
	f.UserID = &userID
	f.CurrentStep = model.StepPayment
	return nil
}

// AttachPayment records the hosted checkout URL and completes the
// flow.  The member lands on the platform after the redirect.
func AttachPayment(f *model.RegistrationFlow, checkoutURL string) error {
	if f.CurrentStep != model.StepPayment {
		return ErrWrongStep
	}
	f.PaymentURL = checkoutURL
	f.CurrentStep = model.StepDone
	return nil
}
