// SPDX-License-Identifier: MPL-2.0

// Package probe answers whether the current process can create and delete
// files in a directory.
//
// The answer is empirical: a uniquely named file is created with O_EXCL and
// removed again. Permission bits, ACLs, read-only mounts and sandboxes are all
// covered by the same test, which is why no mode inspection is attempted.
package probe
