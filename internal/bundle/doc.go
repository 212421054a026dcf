// SPDX-License-Identifier: MPL-2.0

// Package bundle installs the Vencordorion plugin bundle: browser.css,
// browser.js and the vencord.version marker holding the installed tag.
//
// The marker is the only record of what is installed. It is written last,
// atomically, and only after both companion files were replaced, so it
// never names a release that was not fully downloaded. A failure after
// browser.css but before browser.js leaves the new stylesheet beside the old
// script with the old marker; that state is reported, not repaired.
package bundle
