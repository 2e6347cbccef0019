/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"fmt"
)

var (
	// These variables are set using -ldflags
	georegionVersion string
	gitBranch        string
	lastCommitSHA    string
	lastCommitTime   string
)

// NonRootTemplate is the help template for sub-commands. It leaves out the
// global flags, which are listed by the root command.
const NonRootTemplate = `{{if .Long}}{{.Long}}{{else}}{{.Short}}{{end}}

Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`

// BuildDetails returns a string containing details about the binary.
func BuildDetails() string {
	return fmt.Sprintf(`
georegion version : %v
Commit SHA-1      : %v
Commit timestamp  : %v
Branch            : %v

Licensed under the Apache 2.0 License.

`,
		Version(), lastCommitSHA, lastCommitTime, gitBranch)
}

// Version returns the version set at build time, or "dev".
func Version() string {
	if georegionVersion == "" {
		return "dev"
	}
	return georegionVersion
}
