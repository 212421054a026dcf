// SPDX-License-Identifier: MPL-2.0

package issue

import "errors"

const (
	// KindUnknown is any failure that does not wrap one of the sentinels below.
	KindUnknown Kind = iota
	// KindPermissionDenied means a target directory is not writable and
	// elevation is unavailable or did not help.
	KindPermissionDenied
	// KindElevationRefused means the user or system policy declined escalation.
	KindElevationRefused
	// KindNetwork means the release host could not be reached or answered badly.
	KindNetwork
	// KindNotFound means the project or release does not exist.
	KindNotFound
	// KindAssetNotFound means the release exists but lacks the named asset.
	KindAssetNotFound
	// KindIO means a local filesystem write, rename or remove failed.
	KindIO
)

var (
	// ErrPermissionDenied is wrapped by failures of KindPermissionDenied.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrElevationRefused is wrapped by failures of KindElevationRefused.
	ErrElevationRefused = errors.New("elevation refused")
	// ErrNetwork is wrapped by failures of KindNetwork.
	ErrNetwork = errors.New("network error")
	// ErrNotFound is wrapped by failures of KindNotFound.
	ErrNotFound = errors.New("not found")
	// ErrAssetNotFound is wrapped by failures of KindAssetNotFound.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrIO is wrapped by failures of KindIO.
	ErrIO = errors.New("i/o error")
)

// Kind is the coarse classification of an updater failure.
type Kind int

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindPermissionDenied:
		return "permission-denied"
	case KindElevationRefused:
		return "elevation-refused"
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not-found"
	case KindAssetNotFound:
		return "asset-not-found"
	case KindIO:
		return "io"
	case KindUnknown:
		return "unknown"
	}
	return "unknown"
}

// KindOf classifies err by the first sentinel it wraps. Elevation and
// permission failures are checked first because they are fatal to the whole
// invocation and may wrap lower-level causes.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrElevationRefused):
		return KindElevationRefused
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrAssetNotFound):
		return KindAssetNotFound
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrIO):
		return KindIO
	default:
		return KindUnknown
	}
}
