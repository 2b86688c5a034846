package services

import (
	"fmt"

	"fdweb/internal/models/lead_models"
	"fdweb/pkg/utils"
)

const (
	StepProfile    = 1
	StepPopulation = 2
	StepService    = 3
	StepBudget     = 4

	TotalSteps = StepBudget
)

// QuizFlow is the four step diagnostic form. Steps 2 and 3 commit the
// selection and move on immediately; step 4 only commits.
type QuizFlow struct {
	Step  int                           `json:"step"`
	Draft lead_models.DiagnosticRequest `json:"draft"`
}

func NewQuizFlow() *QuizFlow {
	return &QuizFlow{
		Step:  StepProfile,
		Draft: lead_models.NewDraft(),
	}
}

type ProfileInput struct {
	UserName string
	Niche    string
	City     string
	State    string
	HasSite  lead_models.HasSite
	Goal     lead_models.Goal
}

func (q *QuizFlow) SetProfile(in ProfileInput) error {
	if q.Step != StepProfile {
		return fmt.Errorf("%w: profile is edited on step %d", utils.ErrInvalidTransition, StepProfile)
	}
	q.Draft.UserName = in.UserName
	q.Draft.Niche = in.Niche
	q.Draft.City = in.City
	q.Draft.State = lead_models.NormalizeState(in.State)
	if in.HasSite != "" {
		q.Draft.HasSite = in.HasSite
	}
	if in.Goal != "" {
		q.Draft.Goal = in.Goal
	}
	return nil
}

func (q *QuizFlow) SelectPopulation(pop int) error {
	if q.Step != StepPopulation {
		return fmt.Errorf("%w: population is chosen on step %d", utils.ErrInvalidTransition, StepPopulation)
	}
	if !lead_models.ValidPopulation(pop) {
		return fmt.Errorf("%w: population %d is not an offered option", utils.ErrInvalidInput, pop)
	}
	q.Draft.CityPopulation = pop
	q.Step = StepService
	return nil
}

func (q *QuizFlow) SelectService(t lead_models.ServiceType) error {
	if q.Step != StepService {
		return fmt.Errorf("%w: service is chosen on step %d", utils.ErrInvalidTransition, StepService)
	}
	if !t.Valid() {
		return fmt.Errorf("%w: unknown service type %q", utils.ErrInvalidInput, t)
	}
	q.Draft.ServiceType = t
	q.Step = StepBudget
	return nil
}

func (q *QuizFlow) SelectBudget(budget int) error {
	if q.Step != StepBudget {
		return fmt.Errorf("%w: budget is chosen on step %d", utils.ErrInvalidTransition, StepBudget)
	}
	if !lead_models.ValidBudget(budget) {
		return fmt.Errorf("%w: budget %d is not an offered option", utils.ErrInvalidInput, budget)
	}
	q.Draft.Budget = budget
	return nil
}

func (q *QuizFlow) CanGoBack() bool {
	return q.Step > StepProfile
}

// CanAdvance gates the forward button: it stays disabled until name, city
// and state are filled, whatever the step.
func (q *QuizFlow) CanAdvance() bool {
	return q.Step < StepBudget && q.Draft.Complete()
}

func (q *QuizFlow) CanFinalize() bool {
	return q.Step == StepBudget && q.Draft.Complete()
}

func (q *QuizFlow) Next() error {
	if q.Step >= StepBudget {
		return fmt.Errorf("%w: already on the last step", utils.ErrInvalidTransition)
	}
	if !q.Draft.Complete() {
		return utils.ErrStepIncomplete
	}
	q.Step++
	return nil
}

func (q *QuizFlow) Back() error {
	if !q.CanGoBack() {
		return fmt.Errorf("%w: already on the first step", utils.ErrInvalidTransition)
	}
	q.Step--
	return nil
}

// CheckFinalize reports why the draft cannot be finalized yet, if it cannot.
func (q *QuizFlow) CheckFinalize() error {
	if q.Step != StepBudget {
		return fmt.Errorf("%w: finalize is only available on step %d", utils.ErrInvalidTransition, StepBudget)
	}
	if !q.Draft.Complete() {
		return utils.ErrStepIncomplete
	}
	return nil
}

// Finalize stamps id on a copy of the draft. The flow itself is untouched,
// so a failed persist leaves the draft without an id.
func (q *QuizFlow) Finalize(id string) (lead_models.DiagnosticRequest, error) {
	if err := q.CheckFinalize(); err != nil {
		return lead_models.DiagnosticRequest{}, err
	}
	if id == "" {
		return lead_models.DiagnosticRequest{}, fmt.Errorf("%w: empty lead id", utils.ErrInvalidInput)
	}
	lead := q.Draft
	lead.ID = id
	return lead, nil
}
