package gitlab

import (
	"context"
	"strings"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/failsight/internal/model/interfaces"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const (
	defaultBaseURL = "https://gitlab.com"
	shortSHALength = 7
)

var _ interfaces.SourceProvider = (*Provider)(nil)

// Provider implements the SourceProvider interface for GitLab
type Provider struct {
	client *gitlab.Client
	config model.SourceConfig
	logger logze.Logger
}

// New creates a new GitLab source provider
func New(config model.SourceConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("GitLab token is required")
	}
	logger := logze.With("provider", "gitlab")

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client, err := gitlab.NewClient(config.Token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create GitLab client")
	}

	return &Provider{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// ListCommits returns up to limit commits of the project, newest first,
// with stats and per-file diffs attached.
func (p *Provider) ListCommits(ctx context.Context, repo string, limit int) ([]model.Commit, error) {
	opts := &gitlab.ListCommitsOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
		WithStats:   gitlab.Ptr(true),
	}

	var commits []model.Commit
	for {
		page, resp, err := p.client.Commits.ListCommits(repo, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, errm.Wrap(err, "failed to list commits")
		}

		for _, item := range page {
			if limit > 0 && len(commits) >= limit {
				return commits, nil
			}

			commit := p.convertCommit(item)

			diffs, _, err := p.client.Commits.GetCommitDiff(repo, item.ID, &gitlab.GetCommitDiffOptions{ListOptions: gitlab.ListOptions{PerPage: 100}}, gitlab.WithContext(ctx))
			if err != nil {
				p.logger.Warn("failed to get commit diff", "sha", item.ShortID, "error", err)
			} else {
				p.attachDiffs(&commit, diffs)
			}

			commits = append(commits, commit)

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
	opts := &gitlab.ListBranchesOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}

	var branches []model.Branch
	for {
		page, resp, err := p.client.Branches.ListBranches(repo, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, errm.Wrap(err, "failed to list branches")
		}

		for _, branch := range page {
			out := model.Branch{
				Name: branch.Name,
				Type: "remote",
			}
			if branch.Commit != nil {
				out.CommitSHA = branch.Commit.ShortID
				out.CommitMessage = branch.Commit.Title
				out.CommitDate = lang.Deref(branch.Commit.CommittedDate)
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

// convertCommit converts a GitLab commit to the extractor commit shape
func (p *Provider) convertCommit(commit *gitlab.Commit) model.Commit {
	out := model.Commit{
		SHA:      commit.ID,
		ShortSHA: lang.Check(commit.ShortID, shortSHA(commit.ID)),
		Author: model.Signature{
			Name:  commit.AuthorName,
			Email: commit.AuthorEmail,
		},
		Committer: model.Signature{
			Name:  commit.CommitterName,
			Email: commit.CommitterEmail,
		},
		Date:    commitDate(commit),
		Message: strings.TrimSpace(commit.Message),
		Parents: commit.ParentIDs,
	}

	if commit.Stats != nil {
		out.Stats = model.CommitStats{
			TotalInsertions: commit.Stats.Additions,
			TotalDeletions:  commit.Stats.Deletions,
			TotalLines:      commit.Stats.Total,
		}
	}

	return out
}

// attachDiffs fills per-file changes from the commit diff. GitLab does not
// expose per-file counters, so insertions and deletions are counted from the
// patch text itself.
func (p *Provider) attachDiffs(commit *model.Commit, diffs []*gitlab.Diff) {
	for _, diff := range diffs {
		insertions, deletions := countPatchLines(diff.Diff)

		commit.Files = append(commit.Files, model.FileChange{
			File:       diff.NewPath,
			Insertions: insertions,
			Deletions:  deletions,
			Lines:      insertions + deletions,
		})

		out := model.Diff{
			ChangeType: changeType(diff),
			OldPath:    diff.OldPath,
			NewPath:    diff.NewPath,
			Renamed:    diff.RenamedFile,
			Deleted:    diff.DeletedFile,
			NewFile:    diff.NewFile,
		}
		out.Patch, out.Truncated = truncateDiff(diff.Diff, p.config.DiffCharLimit)

		commit.Diffs = append(commit.Diffs, out)
	}

	commit.Stats.TotalFiles = len(commit.Files)
}

func changeType(diff *gitlab.Diff) string {
	switch {
	case diff.NewFile:
		return "added"
	case diff.DeletedFile:
		return "removed"
	case diff.RenamedFile:
		return "renamed"
	default:
		return "modified"
	}
}

func countPatchLines(patch string) (insertions, deletions int) {
	for _, line := range strings.Split(patch, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			insertions++
		case strings.HasPrefix(line, "-"):
			deletions++
		}
	}
	return insertions, deletions
}

func truncateDiff(patch string, limit int) (string, bool) {
	if limit > 0 && len(patch) > limit {
		return patch[:limit] + "\n... [truncated]", true
	}
	return patch, false
}

func shortSHA(sha string) string {
	if len(sha) > shortSHALength {
		return sha[:shortSHALength]
	}
	return sha
}

func commitDate(commit *gitlab.Commit) time.Time {
	if commit.CommittedDate != nil {
		return *commit.CommittedDate
	}
	return lang.Deref(commit.CreatedAt)
}
