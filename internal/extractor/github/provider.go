package github

import (
	"context"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/failsight/internal/model/interfaces"
	"github.com/maxbolgarin/logze/v2"
	"golang.org/x/oauth2"
)

var _ interfaces.SourceProvider = (*Provider)(nil)

const shortSHALength = 7

// Provider implements the SourceProvider interface for GitHub
type Provider struct {
	client *github.Client
	config model.SourceConfig
	logger logze.Logger
}

// New creates a new GitHub source provider
func New(config model.SourceConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("GitHub token is required")
	}
	log := logze.With("provider", "github")

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: config.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)

	// Set base URL if provided (for GitHub Enterprise)
	if config.BaseURL != "" {
		var err error
		client, err = github.NewClient(tc).WithEnterpriseURLs(config.BaseURL, config.BaseURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to create GitHub Enterprise client")
		}
	}

	return &Provider{
		client: client,
		config: config,
		logger: log,
	}, nil
}

// ListCommits returns up to limit commits of the repository, newest first.
// Every commit is fetched individually to attach per-file stats and patches.
func (p *Provider) ListCommits(ctx context.Context, repo string, limit int) ([]model.Commit, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var commits []model.Commit
	for {
		page, resp, err := p.client.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to list commits")
		}

		for _, item := range page {
			if limit > 0 && len(commits) >= limit {
				return commits, nil
			}

			full, _, err := p.client.Repositories.GetCommit(ctx, owner, name, item.GetSHA(), nil)
			if err != nil {
				p.logger.Warn("failed to get commit details", "sha", item.GetSHA(), "error", err)
				continue
			}

			commits = append(commits, p.convertCommit(full))

			if len(commits)%50 == 0 {
				p.logger.Info("processing commits", "count", len(commits))
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

// ListBranches returns all branches with their head commit info
func (p *Provider) ListBranches(ctx context.Context, repo string) ([]model.Branch, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var branches []model.Branch
	for {
		page, resp, err := p.client.Repositories.ListBranches(ctx, owner, name, opts)
		if err != nil {
			return nil, errm.Wrap(err, "failed to list branches")
		}

		for _, branch := range page {
			out := model.Branch{
				Name:      branch.GetName(),
				Type:      "remote",
				CommitSHA: shortSHA(branch.GetCommit().GetSHA()),
			}

			// Branch listing carries only the head SHA, message and date need one more call
			head, _, err := p.client.Repositories.GetCommit(ctx, owner, name, branch.GetCommit().GetSHA(), nil)
			if err == nil {
				out.CommitMessage = firstLine(head.GetCommit().GetMessage())
				out.CommitDate = head.GetCommit().GetAuthor().GetDate().Time
			}

			branches = append(branches, out)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return branches, nil
}

// convertCommit converts a GitHub commit to the extractor commit shape
func (p *Provider) convertCommit(commit *github.RepositoryCommit) model.Commit {
	out := model.Commit{
		SHA:      commit.GetSHA(),
		ShortSHA: shortSHA(commit.GetSHA()),
		Author: model.Signature{
			Name:  commit.GetCommit().GetAuthor().GetName(),
			Email: commit.GetCommit().GetAuthor().GetEmail(),
		},
		Committer: model.Signature{
			Name:  commit.GetCommit().GetCommitter().GetName(),
			Email: commit.GetCommit().GetCommitter().GetEmail(),
		},
		Date:    commit.GetCommit().GetAuthor().GetDate().Time,
		Message: strings.TrimSpace(commit.GetCommit().GetMessage()),
	}

	for _, parent := range commit.Parents {
		out.Parents = append(out.Parents, parent.GetSHA())
	}

	for _, file := range commit.Files {
		out.Files = append(out.Files, model.FileChange{
			File:       file.GetFilename(),
			Insertions: file.GetAdditions(),
			Deletions:  file.GetDeletions(),
			Lines:      file.GetChanges(),
		})

		status := file.GetStatus()
		oldPath := file.GetPreviousFilename()
		if oldPath == "" {
			oldPath = file.GetFilename()
		}

		diff := model.Diff{
			ChangeType: status,
			OldPath:    oldPath,
			NewPath:    file.GetFilename(),
			Renamed:    status == "renamed",
			Deleted:    status == "removed",
			NewFile:    status == "added",
		}
		diff.Patch, diff.Truncated = truncateDiff(file.GetPatch(), p.config.DiffCharLimit)

		out.Diffs = append(out.Diffs, diff)
	}

	out.Stats = model.CommitStats{
		TotalFiles:      len(out.Files),
		TotalInsertions: commit.GetStats().GetAdditions(),
		TotalDeletions:  commit.GetStats().GetDeletions(),
		TotalLines:      commit.GetStats().GetTotal(),
	}

	return out
}

func truncateDiff(patch string, limit int) (string, bool) {
	if limit > 0 && len(patch) > limit {
		return patch[:limit] + "\n... [truncated]", true
	}
	return patch, false
}

func splitRepo(repo string) (string, string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", errm.Errorf("invalid repository format, expected owner/name: %s", repo)
	}
	return owner, name, nil
}

func shortSHA(sha string) string {
	if len(sha) > shortSHALength {
		return sha[:shortSHALength]
	}
	return sha
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return line
}
