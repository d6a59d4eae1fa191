// Package wizard drives the three-step order flow: which step is active,
// which transitions are legal, and when the draft may be submitted.
package wizard

import (
	"sync"

	"video-order-service/internal/apperrors"
	"video-order-service/internal/draft"
	"video-order-service/internal/models"

	"go.uber.org/zap"
)

// Step identifies a wizard step
type Step string

const (
	StepDetails Step = "details"
	StepImages  Step = "images"
	StepSummary Step = "summary"

	// StepReview is a display-only sentinel shown after submission. It is
	// never a transition target of the state machine.
	StepReview Step = "review"
)

// Controller is the wizard state machine over one draft session.
type Controller struct {
	mu        sync.Mutex
	draft     *draft.Store
	step      Step
	submitted bool
	logger    *zap.Logger
}

// NewController starts a wizard at the details step.
func NewController(d *draft.Store, logger *zap.Logger) *Controller {
	return &Controller{
		draft:  d,
		step:   StepDetails,
		logger: logger,
	}
}

// Step returns the currently active step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitted {
		return StepReview
	}
	return c.step
}

// Advance moves to the next step. Leaving the details step requires the
// step-1 fields to validate; a rejected attempt leaves the state unchanged
// and returns the field errors for display.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitted {
		return &apperrors.TransitionError{From: string(StepReview), To: ""}
	}

	switch c.step {
	case StepDetails:
		if errs := c.draft.Step1Errors(); len(errs) > 0 {
			c.logger.Debug("Details step blocked by validation",
				zap.Int("field_errors", len(errs)))
			return &apperrors.TransitionError{
				From:   string(StepDetails),
				To:     string(StepImages),
				Fields: errs,
			}
		}
		c.step = StepImages

	case StepImages:
		// no gate: zero images is permitted
		c.step = StepSummary

	default:
		return &apperrors.TransitionError{From: string(c.step), To: ""}
	}

	return nil
}

// Back retreats one step. Retreating never touches draft data.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitted {
		return &apperrors.TransitionError{From: string(StepReview), To: ""}
	}

	switch c.step {
	case StepImages:
		c.step = StepDetails
	case StepSummary:
		c.step = StepImages
	default:
		return &apperrors.TransitionError{From: string(StepDetails), To: ""}
	}

	return nil
}

// Submit is the terminal action from the summary step. It freezes the
// draft and packages it, with its derived price, into an OrderSummary for
// the payment boundary.
func (c *Controller) Submit() (models.OrderSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitted {
		return models.OrderSummary{}, &apperrors.TransitionError{From: string(StepReview), To: ""}
	}
	if c.step != StepSummary {
		return models.OrderSummary{}, &apperrors.TransitionError{
			From: string(c.step),
			To:   string(StepReview),
		}
	}

	c.draft.Freeze()
	c.submitted = true

	d := c.draft.Draft()
	summary := models.OrderSummary{
		ActivityDescription: d.ActivityDescription,
		DurationSeconds:     d.DurationSeconds,
		Style:               d.Style,
		AdditionalNotes:     d.AdditionalNotes,
		ImageCount:          len(d.ReferenceImages),
		Price:               d.Price,
	}

	c.logger.Info("Order draft submitted",
		zap.Int("duration_seconds", summary.DurationSeconds),
		zap.String("style", string(summary.Style)),
		zap.Int("image_count", summary.ImageCount),
		zap.Int64("price", summary.Price))

	return summary, nil
}

// Submitted reports whether the draft has been submitted.
func (c *Controller) Submitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}
