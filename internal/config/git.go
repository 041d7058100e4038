package config

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/site"
)

const defaultBranch = "main"

// Remote describes the hosting repository of a site.
type Remote struct {
	URL    string
	Host   string
	Owner  string
	Repo   string
	Branch string
}

// scpLike matches git@host:owner/repo.git style remotes.
var scpLike = regexp.MustCompile(`^(?:[A-Za-z0-9._-]+@)?([A-Za-z0-9.-]+):(.+)$`)

// ParseRemoteURL extracts host, owner and repository from a git remote URL.
// Nested groups (GitLab subgroups) stay in Owner.
func ParseRemoteURL(raw string) (Remote, error) {
	raw = strings.TrimSpace(raw)
	var host, p string
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return Remote{}, errors.WrapError(err, errors.CategoryGit, "parse remote url").WithContext("url", raw).Build()
		}
		host, p = u.Hostname(), u.Path
	} else if m := scpLike.FindStringSubmatch(raw); m != nil {
		host, p = m[1], m[2]
	}

	p = strings.TrimSuffix(strings.Trim(p, "/"), ".git")
	i := strings.LastIndex(p, "/")
	if host == "" || i <= 0 || i == len(p)-1 {
		return Remote{}, errors.GitError("remote url has no owner/repository path").WithContext("url", raw).Build()
	}
	return Remote{URL: raw, Host: strings.ToLower(host), Owner: p[:i], Repo: p[i+1:], Branch: defaultBranch}, nil
}

// InferFromGit reads the origin remote of the repository containing dir.
func InferFromGit(dir string) (Remote, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Remote{}, errors.WrapError(err, errors.CategoryGit, "open git repository").WithContext("dir", dir).Build()
	}

	origin, err := repo.Remote("origin")
	if err != nil {
		return Remote{}, errors.NewError(errors.CategoryNotFound, "repository has no origin remote").
			WithCause(err).WithContext("dir", dir).Build()
	}
	urls := origin.Config().URLs
	if len(urls) == 0 {
		return Remote{}, errors.GitError("origin remote has no url").WithContext("dir", dir).Build()
	}

	r, err := ParseRemoteURL(urls[0])
	if err != nil {
		return Remote{}, err
	}
	r.Branch = headBranch(repo)
	return r, nil
}

// headBranch reads HEAD without resolving it, so freshly initialised
// repositories without commits still report their branch.
func headBranch(repo *git.Repository) string {
	ref, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return defaultBranch
	}
	switch {
	case ref.Type() == plumbing.SymbolicReference && ref.Target().IsBranch():
		return ref.Target().Short()
	case ref.Name().IsBranch():
		return ref.Name().Short()
	default:
		return defaultBranch
	}
}

// IsGitHub reports whether the remote is hosted on github.com.
func (r Remote) IsGitHub() bool { return r.Host == "github.com" }

// EditURL is the browse URL of the default branch, the prefix the docs and
// blog plugins append source paths to.
func (r Remote) EditURL() string {
	return "https://" + r.Host + "/" + r.Owner + "/" + r.Repo + "/tree/" + r.Branch
}

// Apply sets the addressing fields and edit URLs of cfg from the remote.
// GitHub remotes also get the Pages host and project base path. For nested
// owners (GitLab subgroups) organizationName is the innermost group.
func (r Remote) Apply(cfg *site.Config) {
	cfg.OrganizationName = path.Base(r.Owner)
	cfg.ProjectName = r.Repo

	if r.IsGitHub() {
		cfg.URL = "https://" + strings.ToLower(r.Owner) + ".github.io"
		if strings.EqualFold(r.Repo, r.Owner+".github.io") {
			cfg.BaseURL = "/"
		} else {
			cfg.BaseURL = "/" + r.Repo + "/"
		}
	}

	if classic, ok := cfg.ClassicPreset(); ok {
		if classic.Options.Docs != nil {
			classic.Options.Docs.EditURL = r.EditURL()
		}
		if classic.Options.Blog != nil {
			classic.Options.Blog.EditURL = r.EditURL()
		}
	}
}
