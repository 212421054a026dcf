// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type (
	// MarkdownMsg is Markdown text rendered for the user.
	MarkdownMsg string

	// Issue is a help page for one failure kind.
	Issue struct {
		kind        Kind
		mdMsg       MarkdownMsg
		suggestions []string
	}
)

var (
	render = glamour.Render

	permissionDeniedIssue = &Issue{
		kind: KindPermissionDenied,
		mdMsg: `
# The updater cannot write to the target directory

Dorion keeps its injection scripts next to the application. When Dorion is
installed system-wide, that directory belongs to an administrator.

## Things you can try
- Re-run Dorion as an administrator (Windows) or with sudo (macOS/Linux).
- Move Dorion to a directory your user owns.
- If Dorion runs inside Flatpak or Snap, update it with the package manager:
~~~
$ flatpak update
~~~`,
		suggestions: []string{
			"Re-run Dorion with administrator rights",
			"Check that your user owns the plugin directory",
		},
	}

	elevationRefusedIssue = &Issue{
		kind: KindElevationRefused,
		mdMsg: `
# Elevation was refused

The updater asked for administrator rights and the request was declined,
either at the prompt or by system policy. Nothing was changed.

## Things you can try
- Accept the prompt the next time Dorion offers to update.
- Ask your administrator to update Dorion for you.`,
		suggestions: []string{
			"Accept the elevation prompt when it appears",
		},
	}

	networkIssue = &Issue{
		kind: KindNetwork,
		mdMsg: `
# The release host could not be reached

The updater talks to the GitHub Releases API.

## Things you can try
- Check your network connection.
- GitHub allows 60 anonymous API calls per hour. Set a token to raise it:
~~~
$ export GITHUB_TOKEN=ghp_...
~~~`,
		suggestions: []string{
			"Check your network connection and try again",
			"Set GITHUB_TOKEN if you hit the API rate limit",
		},
	}

	notFoundIssue = &Issue{
		kind: KindNotFound,
		mdMsg: `
# No release was found

The configured project has no published release, or the owner/repository
names in the updater configuration are wrong.

## Things you can try
~~~
$ dorion-updater config show
~~~`,
		suggestions: []string{
			"Check main.owner/main.repo and plugin.owner/plugin.repo in the configuration",
		},
	}

	assetNotFoundIssue = &Issue{
		kind: KindAssetNotFound,
		mdMsg: `
# The release is missing a file for this platform

The latest release does not contain the asset the updater needs. A release may
still be uploading; wait a few minutes and try again.`,
		suggestions: []string{
			"Wait for the release upload to finish and try again",
		},
	}

	ioIssue = &Issue{
		kind: KindIO,
		mdMsg: `
# A local file could not be written

The download finished but the file could not be written or moved into place.
Existing files were left as they were.

## Things you can try
- Free some disk space.
- Close Dorion so it does not hold the files open.`,
		suggestions: []string{
			"Close Dorion and try again",
			"Check free disk space",
		},
	}

	issues = map[Kind]*Issue{
		KindPermissionDenied: permissionDeniedIssue,
		KindElevationRefused: elevationRefusedIssue,
		KindNetwork:          networkIssue,
		KindNotFound:         notFoundIssue,
		KindAssetNotFound:    assetNotFoundIssue,
		KindIO:               ioIssue,
	}
)

// Kind returns the failure kind this page documents.
func (i *Issue) Kind() Kind {
	return i.kind
}

// MarkdownMsg returns the raw Markdown page.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Suggestions returns one-line remediation hints for terse output.
func (i *Issue) Suggestions() []string {
	return slices.Clone(i.suggestions)
}

// Render renders the page with the given glamour style ("dark", "light", "notty").
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

// Get returns the help page for kind, or nil for KindUnknown.
func Get(kind Kind) *Issue {
	return issues[kind]
}

// ForError returns the help page matching err's kind, or nil.
func ForError(err error) *Issue {
	return Get(KindOf(err))
}
