// Package leader wires prefix discovery, matching, page lookup, and label
// reconciliation into the per-pull-request pipeline and drives it in single
// or sweep mode.
package leader

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/clintrovert/dday-labeler/internal/dday"
	"github.com/clintrovert/dday-labeler/pkg/types"
)

// DocumentStore is the slice of the task tracker the orchestrator needs.
// *notion.Client satisfies it.
type DocumentStore interface {
	DiscoverPrefixes(ctx context.Context) ([]types.PrefixEntry, error)
	FindTaskPage(ctx context.Context, databaseID, propertyName string, number int) (*types.TaskPage, error)
}

// PullRequestHost is the slice of the pull-request host the orchestrator
// needs. *github.Client satisfies it.
type PullRequestHost interface {
	GetPullRequest(ctx context.Context, number int) (*types.PullRequest, error)
	ListOpenPullRequests(ctx context.Context) ([]*types.PullRequest, error)
}

// Reconciler applies a computed label to one pull request.
type Reconciler interface {
	Reconcile(ctx context.Context, prNumber int, target string) error
}

// Orchestrator coordinates one labeler run.
type Orchestrator struct {
	store      DocumentStore
	host       PullRequestHost
	reconciler Reconciler
	logger     *zap.Logger
}

// NewOrchestrator creates a new orchestrator.
func NewOrchestrator(
	store DocumentStore,
	host PullRequestHost,
	reconciler Reconciler,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		store:      store,
		host:       host,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Run executes one labeler run for the given trigger. pull_request events
// process that one pull request; schedule and workflow_dispatch events sweep
// every open pull request. Any other event is a logged no-op.
//
// Prefixes are discovered exactly once per run and shared read-only across
// every pull request, so schema discovery costs one call regardless of
// sweep size. A discovery failure is fatal for the whole run.
func (o *Orchestrator) Run(ctx context.Context, trigger types.TriggerContext) error {
	switch trigger.Event {
	case types.EventPullRequest:
		if trigger.PRNumber <= 0 {
			return fmt.Errorf("pull_request trigger requires a pull request number")
		}
	case types.EventSchedule, types.EventWorkflowDispatch:
	default:
		o.logger.Info("unsupported event, nothing to do",
			zap.String("event", trigger.Event),
		)
		return nil
	}

	prefixes, err := o.store.DiscoverPrefixes(ctx)
	if err != nil {
		return err
	}

	if trigger.Event == types.EventPullRequest {
		pr, err := o.host.GetPullRequest(ctx, trigger.PRNumber)
		if err != nil {
			return err
		}
		_, err = o.processPullRequest(ctx, prefixes, pr)
		return err
	}

	return o.sweep(ctx, prefixes)
}

// sweep runs the pipeline over every open pull request. Each pull request is
// an independent unit of work: a failure is logged and the loop continues.
func (o *Orchestrator) sweep(ctx context.Context, prefixes []types.PrefixEntry) error {
	pulls, err := o.host.ListOpenPullRequests(ctx)
	if err != nil {
		return err
	}

	skipped, failed := 0, 0
	for _, pr := range pulls {
		skip, err := o.processPullRequest(ctx, prefixes, pr)
		if err != nil {
			failed++
			o.logger.Error("failed to process pull request",
				zap.Int("pr_number", pr.Number),
				zap.Error(err),
			)
			continue
		}
		if skip {
			skipped++
		}
	}

	o.logger.Info("sweep complete",
		zap.Int("processed", len(pulls)),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)

	return nil
}

// processPullRequest runs the per-pull-request pipeline: match an identifier
// in the title, resolve its page, compute the label, reconcile. A title with
// no identifier or an identifier with no page is skipped, leaving the pull
// request's labels untouched; such skips are reported via the first return
// value.
func (o *Orchestrator) processPullRequest(ctx context.Context, prefixes []types.PrefixEntry, pr *types.PullRequest) (bool, error) {
	id, err := dday.Match(pr.Title, prefixNames(prefixes))
	if err != nil {
		return false, err
	}
	if id == nil {
		o.logger.Info("no task id in pull request title, skipping",
			zap.Int("pr_number", pr.Number),
			zap.String("title", pr.Title),
		)
		return true, nil
	}

	o.logger.Info("extracted task id",
		zap.Int("pr_number", pr.Number),
		zap.String("task_id", id.String()),
	)

	entry, ok := entryForPrefix(prefixes, id.Prefix)
	if !ok {
		// Cannot happen: the match came from this prefix set.
		o.logger.Warn("matched prefix missing from registry, skipping",
			zap.String("prefix", id.Prefix),
		)
		return true, nil
	}

	page, err := o.store.FindTaskPage(ctx, entry.DatabaseID, entry.PropertyName, id.Number)
	if err != nil {
		return false, err
	}
	if page == nil {
		o.logger.Info("no task page found, skipping",
			zap.Int("pr_number", pr.Number),
			zap.String("task_id", id.String()),
		)
		return true, nil
	}

	o.logger.Info("fetched task page",
		zap.String("page_id", page.PageID),
		zap.String("due_date", page.DueDate),
	)

	label := dday.ComputeLabel(page.DueDate)

	return false, o.reconciler.Reconcile(ctx, pr.Number, label)
}

func prefixNames(prefixes []types.PrefixEntry) []string {
	names := make([]string, 0, len(prefixes))
	for _, entry := range prefixes {
		names = append(names, entry.Prefix)
	}
	return names
}

func entryForPrefix(prefixes []types.PrefixEntry, prefix string) (types.PrefixEntry, bool) {
	for _, entry := range prefixes {
		if strings.EqualFold(entry.Prefix, prefix) {
			return entry, true
		}
	}
	return types.PrefixEntry{}, false
}
