package finance

import (
	"cmp"
	"slices"
	"time"

	"finsight/internal/models"
)

// GoalPolicy holds the tunables of the goal projector.
type GoalPolicy struct {
	// Tolerance is how far, in minor units, a monthly contribution may fall
	// short of the required one and still count as on track.
	Tolerance int64
}

// DefaultGoalPolicy tolerates a shortfall of one minor unit (0.01).
var DefaultGoalPolicy = GoalPolicy{Tolerance: 1}

// GoalProgress is the state and feasibility of a savings goal.
type GoalProgress struct {
	GoalID                      string              `json:"goal_id"`
	Name                        string              `json:"name"`
	Priority                    models.GoalPriority `json:"priority"`
	PercentComplete             float64             `json:"percent_complete"`
	AmountRemaining             int64               `json:"amount_remaining"`
	MonthsRemaining             int                 `json:"months_remaining"`
	RequiredMonthlyContribution int64               `json:"required_monthly_contribution"`
	OnTrack                     bool                `json:"on_track"`
	Completed                   bool                `json:"completed"`
	// Overdue is set when the target date has passed and the goal is not complete.
	Overdue bool `json:"overdue"`
	// ProjectedCompletionDate is when the current contribution rate reaches the
	// target. It is nil for completed goals and when nothing is contributed.
	ProjectedCompletionDate *time.Time `json:"projected_completion_date"`
}

// GoalProgressOf projects a goal with DefaultGoalPolicy.
func GoalProgressOf(g models.Goal, asOf time.Time) (GoalProgress, error) {
	return DefaultGoalPolicy.Progress(g, asOf)
}

// Progress projects a goal as of the given time.
//
// The required monthly contribution is rounded up to the minor unit. When no
// whole month remains before the target date the full remaining amount is
// required immediately. A target amount of zero or less counts as complete.
func (p GoalPolicy) Progress(g models.Goal, asOf time.Time) (GoalProgress, error) {
	if err := ValidateGoal(g); err != nil {
		return GoalProgress{}, err
	}

	gp := GoalProgress{GoalID: g.ID, Name: g.Name, Priority: g.Priority}

	if g.TargetAmount <= 0 {
		gp.PercentComplete = 100
	} else {
		gp.PercentComplete = min(100, percentOf(g.CurrentAmount, g.TargetAmount))
	}
	gp.AmountRemaining = max(0, g.TargetAmount-g.CurrentAmount)
	gp.Completed = gp.AmountRemaining == 0
	gp.MonthsRemaining = max(0, MonthsBetween(asOf, g.TargetDate))
	gp.Overdue = !gp.Completed && !asOf.Before(g.TargetDate)

	if gp.MonthsRemaining > 0 {
		gp.RequiredMonthlyContribution = dec(gp.AmountRemaining).Div(dec(int64(gp.MonthsRemaining))).Ceil().IntPart()
	} else {
		gp.RequiredMonthlyContribution = gp.AmountRemaining
	}
	gp.OnTrack = g.MonthlyContribution+p.Tolerance >= gp.RequiredMonthlyContribution

	if !gp.Completed && g.MonthlyContribution > 0 {
		months := dec(gp.AmountRemaining).Div(dec(g.MonthlyContribution)).Ceil().IntPart()
		done := AddMonths(asOf, int(months))
		gp.ProjectedCompletionDate = &done
	}
	return gp, nil
}

// ProgressAll projects every goal, ordered by priority, then target date,
// then id.
func (p GoalPolicy) ProgressAll(goals []models.Goal, asOf time.Time) ([]GoalProgress, error) {
	ordered := slices.Clone(goals)
	slices.SortStableFunc(ordered, func(a, b models.Goal) int {
		if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
			return c
		}
		if c := a.TargetDate.Compare(b.TargetDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	out := make([]GoalProgress, 0, len(ordered))
	for _, g := range ordered {
		gp, err := p.Progress(g, asOf)
		if err != nil {
			return nil, err
		}
		out = append(out, gp)
	}
	return out, nil
}
