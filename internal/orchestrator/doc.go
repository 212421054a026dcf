// SPDX-License-Identifier: MPL-2.0

// Package orchestrator sequences one updater invocation:
//
//	Start -> probe plugin dir -> [escalate once] -> plugin bundle -> main app -> done
//
// Only the plugin directory is probed because no main-application strategy
// writes into the install directory. Escalation happens at most once per
// invocation; an invocation that was itself started by the escalator never
// escalates again.
package orchestrator
