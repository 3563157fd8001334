package types

// PullRequest contains the pull request fields the pipeline reads. Labels
// are always re-fetched by the reconciler, so they are not carried here.
type PullRequest struct {
	Number int
	Title  string
	URL    string
}
