// meta.go — module metadata and source-link templates for xgx-trace core.
//
// Scope:
//   - ModuleMeta: static identity of the compilation unit an error trace
//     originated in (name, import path, repository coordinates).
//   - LinkFormat: textual templates that turn a (meta, location) pair into
//     a clickable source URL. Four hosted-forge formats ship built in;
//     custom templates are plain strings with the same placeholders.
//
// Conventions:
//   - Optional fields use "" for "absent"; getters on traces surface nil
//     when no metadata was registered at all.
//   - A ModuleMeta is registered once per module (typically a package-level
//     var) and shared by pointer; it is never mutated after registration.
package xgxtrace

import (
	"strconv"
	"strings"
)

// LinkFormat is a URL template with the placeholders {repo}, {commit},
// {path}, {file}, and {line}. Substitution is purely textual.
type LinkFormat string

// Built-in link formats for the common hosted forges.
const (
	LinkGitHub    LinkFormat = "{repo}/blob/{commit}/{path}{file}#L{line}"
	LinkGitLab    LinkFormat = "{repo}/-/blob/{commit}/{path}{file}#L{line}"
	LinkBitbucket LinkFormat = "{repo}/src/{commit}/{path}{file}#lines-{line}"
	LinkGitea     LinkFormat = "{repo}/src/commit/{commit}/{path}{file}#L{line}"
)

// CustomLink builds a LinkFormat from an arbitrary template string.
// The template may use any subset of the documented placeholders.
func CustomLink(template string) LinkFormat {
	return LinkFormat(template)
}

// ModuleMeta is static metadata about a module, used to label cross-module
// trace boundaries and to generate repository links.
//
// Typical registration:
//
//	var meta = &xgxtrace.ModuleMeta{
//		Name:   "payments",
//		Path:   "github.com/acme/payments",
//		Repo:   "https://github.com/acme/payments",
//		Commit: "1a2b3c4",
//	}
type ModuleMeta struct {
	// Name is the short module name shown at trace boundaries.
	Name string
	// Path is the module import path.
	Path string
	// Repo is the repository URL ("" = unknown; no links are generated).
	Repo string
	// Docs is the documentation URL ("" = unknown).
	Docs string
	// Commit is the commit hash or tag used for permalinks ("" = unknown).
	Commit string
	// Dir is the path from the repository root to the module, for
	// multi-module repositories (e.g. "services/payments/"). Substituted
	// for {path}; "" for single-module repositories.
	Dir string
	// Link selects the URL template. The zero value means LinkGitHub.
	Link LinkFormat
}

// linkFormat returns the effective template, defaulting to GitHub.
func (m *ModuleMeta) linkFormat() LinkFormat {
	if m.Link == "" {
		return LinkGitHub
	}
	return m.Link
}

// LinkURL renders a clickable source URL for loc, or ("", false) when the
// metadata lacks a repository URL or commit.
//
// Backslashes in the file path are normalized to forward slashes so
// Windows-built binaries still produce valid URLs.
func (m *ModuleMeta) LinkURL(loc Location) (string, bool) {
	if m == nil || m.Repo == "" || m.Commit == "" {
		return "", false
	}
	repl := strings.NewReplacer(
		"{repo}", strings.TrimSuffix(m.Repo, "/"),
		"{commit}", m.Commit,
		"{path}", m.Dir,
		"{file}", strings.ReplaceAll(loc.File, `\`, "/"),
		"{line}", strconv.Itoa(loc.Line),
	)
	return repl.Replace(string(m.linkFormat())), true
}
