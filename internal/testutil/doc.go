// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides the Must* file helpers it carries FakeSource, an in-memory release
// host shared by the bundle, apply and orchestrator tests.
package testutil
