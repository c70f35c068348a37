package onboarding

import (
	"errors"
	"testing"

	"github.com/toptiermen/platform/internal/model"
)

func TestScore(t *testing.T) {
	cases := []struct {
		name    string
		answers map[string]string
		want    int
	}{
		{"empty", map[string]string{}, 0},
		{"max commitment", map[string]string{
			"goal": "transform", "commitment": "6plus", "accountability": "yes",
			"training": "daily", "investment": "yes",
		}, 25},
		{"unknown keys score zero", map[string]string{"goal": "transform", "bogus": "yes"}, 5},
		{"unknown option scores zero", map[string]string{"goal": "whatever"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.answers); got != tc.want {
				t.Errorf("Score() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSubmitAnswersAdmits(t *testing.T) {
	f := New()
	answers := map[string]string{
		"goal": "transform", "commitment": "3-6", "accountability": "yes",
		"training": "weekly", "investment": "yes",
	}
	if err := SubmitAnswers(&f, answers); err != nil {
		t.Fatal(err)
	}
	if f.Score < AdmissionThreshold {
		t.Fatalf("score = %d, expected at least %d for this answer set", f.Score, AdmissionThreshold)
	}
	if f.CurrentStep != model.StepPackage {
		t.Errorf("step = %q, want %q", f.CurrentStep, model.StepPackage)
	}
}

func TestSubmitAnswersRejectsLowScore(t *testing.T) {
	f := New()
	answers := map[string]string{"goal": "none", "commitment": "lt1", "investment": "no"}
	if err := SubmitAnswers(&f, answers); err != nil {
		t.Fatal(err)
	}
	if f.CurrentStep != model.StepRejected {
		t.Errorf("step = %q, want %q", f.CurrentStep, model.StepRejected)
	}
}

func TestSubmitAnswersOnlyFromEarlySteps(t *testing.T) {
	f := New()
	f.CurrentStep = model.StepPayment
	err := SubmitAnswers(&f, map[string]string{"goal": "transform"})
	if !errors.Is(err, ErrWrongStep) {
		t.Fatalf("err = %v, want ErrWrongStep", err)
	}
}

func TestChoosePackage(t *testing.T) {
	f := New()
	f.CurrentStep = model.StepPackage

	if err := ChoosePackage(&f, "nonsense"); !errors.Is(err, ErrUnknownPackage) {
		t.Fatalf("unknown package: err = %v, want ErrUnknownPackage", err)
	}
	if err := ChoosePackage(&f, "monthly"); err != nil {
		t.Fatal(err)
	}
	if f.PackageID != "monthly" || f.CurrentStep != model.StepRegister {
		t.Errorf("flow = step %q package %q, want register/monthly", f.CurrentStep, f.PackageID)
	}
}

func TestChoosePackageGuarded(t *testing.T) {
	f := New() // still at intro
	if err := ChoosePackage(&f, "monthly"); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("err = %v, want ErrWrongStep", err)
	}
}

func TestFullHappyPath(t *testing.T) {
	f := New()
	answers := map[string]string{
		"goal": "transform", "commitment": "6plus", "accountability": "yes",
		"training": "daily", "investment": "yes",
	}
	if err := SubmitAnswers(&f, answers); err != nil {
		t.Fatal(err)
	}
	if err := ChoosePackage(&f, "yearly"); err != nil {
		t.Fatal(err)
	}
	if err := AttachUser(&f, 42); err != nil {
		t.Fatal(err)
	}
	if f.UserID == nil || *f.UserID != 42 {
		t.Fatal("user id not recorded")
	}
	if err := AttachPayment(&f, "https://pay.example.com/c/abc"); err != nil {
		t.Fatal(err)
	}
	if f.CurrentStep != model.StepDone {
		t.Errorf("final step = %q, want %q", f.CurrentStep, model.StepDone)
	}
	if f.PaymentURL == "" {
		t.Error("payment url not recorded")
	}
}

func TestPackageByID(t *testing.T) {
	if _, ok := PackageByID("prelaunch"); !ok {
		t.Error("prelaunch missing from catalog")
	}
	if _, ok := PackageByID("lifetime"); ok {
		t.Error("unexpected package in catalog")
	}
}
