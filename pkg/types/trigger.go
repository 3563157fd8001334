package types

// Event names as delivered by GitHub Actions.
const (
	EventPullRequest      = "pull_request"
	EventSchedule         = "schedule"
	EventWorkflowDispatch = "workflow_dispatch"
)

// TriggerContext describes one invocation of the labeler. Repository is the
// "owner/repo" slug. PRNumber is only meaningful for pull_request events.
type TriggerContext struct {
	Event      string
	Repository string
	PRNumber   int
}
