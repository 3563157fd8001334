package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/clintrovert/dday-labeler/pkg/types"
)

// Client wraps the GitHub API for one repository.
type Client struct {
	apiClient *github.Client
	logger    *zap.Logger
	owner     string
	repo      string
}

// NewClient creates a new GitHub client for the "owner/repo" slug.
func NewClient(accessToken, repository string, logger *zap.Logger) (*Client, error) {
	owner, repo, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: accessToken},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		apiClient: github.NewClient(tc),
		logger:    logger,
		owner:     owner,
		repo:      repo,
	}, nil
}

func splitRepository(repository string) (string, string, error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/repo", repository)
	}
	return parts[0], parts[1], nil
}

// GetPullRequest fetches a single pull request by number.
func (c *Client) GetPullRequest(ctx context.Context, number int) (*types.PullRequest, error) {
	pr, _, err := c.apiClient.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request #%d: %w", number, err)
	}

	return &types.PullRequest{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
	}, nil
}

// ListOpenPullRequests fetches every open pull request in the repository.
func (c *Client) ListOpenPullRequests(ctx context.Context) ([]*types.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var pulls []*types.PullRequest
	for {
		page, resp, err := c.apiClient.PullRequests.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list open pull requests: %w", err)
		}

		for _, pr := range page {
			pulls = append(pulls, &types.PullRequest{
				Number: pr.GetNumber(),
				Title:  pr.GetTitle(),
				URL:    pr.GetHTMLURL(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return pulls, nil
}

// ListLabels returns the names of all labels currently on a pull request.
func (c *Client) ListLabels(ctx context.Context, prNumber int) ([]string, error) {
	opts := &github.ListOptions{PerPage: 100}

	var names []string
	for {
		labels, resp, err := c.apiClient.Issues.ListLabelsByIssue(ctx, c.owner, c.repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list labels on #%d: %w", prNumber, err)
		}

		for _, label := range labels {
			names = append(names, label.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

// RemoveLabel detaches a label from a pull request.
func (c *Client) RemoveLabel(ctx context.Context, prNumber int, name string) error {
	_, err := c.apiClient.Issues.RemoveLabelForIssue(ctx, c.owner, c.repo, prNumber, name)
	if err != nil {
		return fmt.Errorf("failed to remove label %q from #%d: %w", name, prNumber, err)
	}

	c.logger.Info("removed label",
		zap.String("label", name),
		zap.Int("pr_number", prNumber),
	)

	return nil
}

// AddLabel attaches a label to a pull request.
func (c *Client) AddLabel(ctx context.Context, prNumber int, name string) error {
	_, _, err := c.apiClient.Issues.AddLabelsToIssue(ctx, c.owner, c.repo, prNumber, []string{name})
	if err != nil {
		return fmt.Errorf("failed to add label %q to #%d: %w", name, prNumber, err)
	}

	c.logger.Info("added label",
		zap.String("label", name),
		zap.Int("pr_number", prNumber),
	)

	return nil
}

// EnsureLabel looks up a repository-level label by name and creates it with
// the given color and description when missing. An existing label is reused
// as-is; its color is not updated.
func (c *Client) EnsureLabel(ctx context.Context, name, color, description string) error {
	_, _, err := c.apiClient.Issues.GetLabel(ctx, c.owner, c.repo, name)
	if err == nil {
		c.logger.Info("reusing existing label", zap.String("label", name))
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("failed to look up label %q: %w", name, err)
	}

	_, _, err = c.apiClient.Issues.CreateLabel(ctx, c.owner, c.repo, &github.Label{
		Name:        github.String(name),
		Color:       github.String(color),
		Description: github.String(description),
	})
	if err != nil {
		return fmt.Errorf("failed to create label %q: %w", name, err)
	}

	c.logger.Info("created label",
		zap.String("label", name),
		zap.String("color", color),
	)

	return nil
}

// isNotFound reports whether err is a GitHub 404. A missing label is the
// expected create branch of EnsureLabel, not a failure.
func isNotFound(err error) bool {
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) &&
		errResp.Response != nil &&
		errResp.Response.StatusCode == http.StatusNotFound
}
