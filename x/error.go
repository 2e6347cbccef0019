/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

// This file contains some functions for error handling in the command line
// tools. Library code returns errors; these are for setup steps where there
// is nothing left to do but exit.
// (1) You receive an error from an external lib, and would like to log fatal.
//     For this, use x.Check, x.Checkf.
// (2) You receive an error and would like to pass it on with some context.
//     In this case, use x.Wrapf or errors.Wrapf.

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Check logs fatal if err != nil.
func Check(err error) {
	if err != nil {
		err = errors.Wrap(err, "")
		glog.Fatalf("%+v", err)
	}
}

// Checkf is Check with extra info.
func Checkf(err error, format string, args ...interface{}) {
	if err != nil {
		err = errors.Wrapf(err, format, args...)
		glog.Fatalf("%+v", err)
	}
}

// Wrapf is errors.Wrapf that passes a nil error through, so the result can go
// straight into Check.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
