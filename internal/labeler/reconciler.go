// Package labeler reconciles a pull request's label set against a freshly
// computed D-Day label.
package labeler

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/clintrovert/dday-labeler/internal/dday"
)

// LabelHost is the slice of the pull-request host the reconciler needs.
// *github.Client satisfies it.
type LabelHost interface {
	ListLabels(ctx context.Context, prNumber int) ([]string, error)
	RemoveLabel(ctx context.Context, prNumber int, name string) error
	AddLabel(ctx context.Context, prNumber int, name string) error
	EnsureLabel(ctx context.Context, name, color, description string) error
}

// ReconcileError wraps a transport or auth failure while reconciling one
// pull request. In sweep mode it aborts that pull request only.
type ReconcileError struct {
	PRNumber int
	Err      error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("failed to reconcile labels on #%d: %v", e.PRNumber, e.Err)
}

func (e *ReconcileError) Unwrap() error { return e.Err }

// Reconciler applies D-Day label changes to pull requests.
type Reconciler struct {
	host   LabelHost
	logger *zap.Logger
}

// NewReconciler creates a new Reconciler.
func NewReconciler(host LabelHost, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		host:   host,
		logger: logger,
	}
}

// Reconcile drives the pull request's label set to contain exactly the
// target D-Day label, or none when target is empty. Every label with the
// "D-" prefix is removed first, so a previous inconsistent state (two D-
// labels, a stale one) is always cleaned up. Removal completes before any
// step that could fail, which keeps a mid-run failure from leaving the pull
// request worse than before; the next run heals a missing label.
//
// Running Reconcile twice with the same target is a no-op the second time
// apart from one remove/add cycle of the same label.
func (r *Reconciler) Reconcile(ctx context.Context, prNumber int, target string) error {
	current, err := r.host.ListLabels(ctx, prNumber)
	if err != nil {
		return &ReconcileError{PRNumber: prNumber, Err: err}
	}

	for _, name := range current {
		if !strings.HasPrefix(name, dday.LabelPrefix) {
			continue
		}
		if err := r.host.RemoveLabel(ctx, prNumber, name); err != nil {
			return &ReconcileError{PRNumber: prNumber, Err: err}
		}
	}

	if target == "" {
		r.logger.Info("no due date, leaving pull request unlabeled",
			zap.Int("pr_number", prNumber),
		)
		return nil
	}

	color := dday.ColorFor(target)
	if err := r.host.EnsureLabel(ctx, target, color, dday.LabelDescription); err != nil {
		return &ReconcileError{PRNumber: prNumber, Err: err}
	}

	if err := r.host.AddLabel(ctx, prNumber, target); err != nil {
		return &ReconcileError{PRNumber: prNumber, Err: err}
	}

	r.logger.Info("reconciled d-day label",
		zap.Int("pr_number", prNumber),
		zap.String("label", target),
	)

	return nil
}
