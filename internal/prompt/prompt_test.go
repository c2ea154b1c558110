package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/smileynet/formexample/internal/form"
)

// scriptedDriver answers prompts from a queue, re-asking like survey does
// while the validator rejects the answer.
type scriptedDriver struct {
	answers  []string
	asked    []InputConfig
	rejected []string
	err      error
}

func (d *scriptedDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d.asked = append(d.asked, cfg)
	for len(d.answers) > 0 {
		a := d.answers[0]
		d.answers = d.answers[1:]
		if cfg.Validator != nil {
			if err := cfg.Validator(a); err != nil {
				d.rejected = append(d.rejected, err.Error())
				continue
			}
		}
		return a, nil
	}
	if d.err != nil {
		return "", d.err
	}
	return "", errors.New("scripted driver: out of answers")
}

func TestRunner_Run_SubmitsValidForm(t *testing.T) {
	// Given: valid answers for every field
	core, logs := observer.New(zapcore.DebugLevel)
	g := form.New(form.WithLogger(zap.New(core)))
	d := &scriptedDriver{answers: []string{"Jane", "Doe", "France", "Looking forward to it"}}

	// When: the prompt flow runs
	sub, err := NewRunner(d).Run(context.Background(), g)

	// Then: the record is submitted and logged once
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := form.Record{FirstName: "Jane", LastName: "Doe", Country: "France", Note: "Looking forward to it"}
	if diff := cmp.Diff(want, sub.Record); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	if !sub.Valid {
		t.Error("submission should be valid")
	}
	if n := logs.FilterMessage("form submitted").Len(); n != 1 {
		t.Errorf("submitted entries = %d, want 1", n)
	}

	var messages []string
	for _, cfg := range d.asked {
		messages = append(messages, cfg.Message)
	}
	wantMessages := []string{"First name:", "Last name:", "Country:", "Note:"}
	if diff := cmp.Diff(wantMessages, messages); diff != "" {
		t.Errorf("prompt order mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_Run_ReasksInvalidAnswers(t *testing.T) {
	// Given: a too-short country followed by a valid one
	g := form.New()
	d := &scriptedDriver{answers: []string{"Jane", "Doe", "US", "", "France", "too short", "Looking forward to it"}}

	sub, err := NewRunner(d).Run(context.Background(), g)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Then: rejected answers carry the rule messages and the final value is accepted
	wantRejected := []string{
		"Country must be at least 5 characters",
		"Country is required",
		"Note must be at least 10 characters",
	}
	if diff := cmp.Diff(wantRejected, d.rejected); diff != "" {
		t.Errorf("rejections mismatch (-want +got):\n%s", diff)
	}
	if sub.Record.Country != "France" {
		t.Errorf("country = %q, want %q", sub.Record.Country, "France")
	}
}

func TestRunner_Run_OffersCurrentValuesAsDefaults(t *testing.T) {
	g := form.New()
	g.Patch(form.Record{FirstName: "Jane"})
	d := &scriptedDriver{answers: []string{"Jane", "Doe", "France", "Looking forward to it"}}

	if _, err := NewRunner(d).Run(context.Background(), g); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if d.asked[0].Default != "Jane" {
		t.Errorf("first default = %q, want %q", d.asked[0].Default, "Jane")
	}
	if d.asked[1].Default != "" {
		t.Errorf("second default = %q, want empty", d.asked[1].Default)
	}
}

func TestRunner_Run_Aborted(t *testing.T) {
	// Given: the user interrupts on the second field
	core, logs := observer.New(zapcore.DebugLevel)
	g := form.New(form.WithLogger(zap.New(core)))
	d := &scriptedDriver{answers: []string{"Jane"}, err: ErrAborted}

	_, err := NewRunner(d).Run(context.Background(), g)

	// Then: the error is reported and nothing is submitted
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("Run() error = %v, want ErrAborted", err)
	}
	if logs.Len() != 0 {
		t.Errorf("log entries = %d, want 0", logs.Len())
	}
	if g.FirstName().Value() != "Jane" {
		t.Errorf("answered field should keep its value, got %q", g.FirstName().Value())
	}
}

func TestRunner_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(&scriptedDriver{}).Run(ctx, form.New())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Errorf("interrupt = %v, want ErrAborted", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); err != other {
		t.Errorf("other error = %v, want passthrough", err)
	}
}

func TestSurveyDriver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSurveyDriver().Input(ctx, InputConfig{Message: "First name:"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Input() error = %v, want context.Canceled", err)
	}
}
