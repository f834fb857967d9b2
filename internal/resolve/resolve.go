// Package resolve turns symbolic commit references into concrete SHAs
// through the GitHub API.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// LatestKeyword is the sentinel SHA value that requests resolution of
// the ref tip through the GitHub API.
const LatestKeyword = "latest"

// NewClient creates a GitHub client, authenticated when a token is
// given, anonymous otherwise. Anonymous requests work for public
// repositories within GitHub's unauthenticated rate limits.
func NewClient(ctx context.Context, token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return github.NewClient(tc)
}

// SplitRepository parses an "owner/name" repository identifier
func SplitRepository(repository string) (owner, name string, err error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid owner/repo format: %s", repository)
	}
	return parts[0], parts[1], nil
}

// CommitSHA resolves ref (e.g. "refs/heads/main") to the commit SHA
// at its tip in the given repository.
func CommitSHA(ctx context.Context, client *github.Client, repository, ref string) (string, error) {
	owner, name, err := SplitRepository(repository)
	if err != nil {
		return "", err
	}

	sha, _, err := client.Repositories.GetCommitSHA1(ctx, owner, name, ref, "")
	if err != nil {
		return "", fmt.Errorf("resolving %s at %s: %w", repository, ref, err)
	}

	return sha, nil
}
