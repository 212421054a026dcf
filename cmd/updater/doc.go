// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the dorion-updater command line.
//
// The root command performs the update itself (--main and/or --vencord);
// the check and config subcommands only read. Business logic lives in the
// internal packages; handlers here parse flags, build an App session, and
// translate failures into styled messages and exit codes.
package cmd
