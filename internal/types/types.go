// Package types provides value types shared between ccrefactor's collaborators
package types

import "fmt"

// Source tells where a FileRef points
type Source string

const (
	// SourceLocal is a path on disk
	SourceLocal Source = "local"
	// SourceGit is a path at a revision of a local git repository
	SourceGit Source = "git"
	// SourceGitHub is a path at a ref of a GitHub repository
	SourceGitHub Source = "github"
)

// FileRef names a file at a revision
type FileRef struct {
	Owner  string `json:"owner,omitempty"`
	Repo   string `json:"repo,omitempty"`
	Ref    string `json:"ref,omitempty"`
	Path   string `json:"path"`
	Source Source `json:"source"`
}

// String renders the reference the way the CLI accepts it
func (r FileRef) String() string {
	switch r.Source {
	case SourceGitHub:
		if r.Ref == "" {
			return fmt.Sprintf("%s/%s:%s", r.Owner, r.Repo, r.Path)
		}
		return fmt.Sprintf("%s/%s@%s:%s", r.Owner, r.Repo, r.Ref, r.Path)
	case SourceGit:
		return fmt.Sprintf("%s:%s", r.Ref, r.Path)
	default:
		return r.Path
	}
}

// IsRemote reports whether fetching the reference needs the network
func (r FileRef) IsRemote() bool {
	return r.Source == SourceGitHub
}
