/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import "github.com/pkg/errors"

// Errors returned by the constructors and operations in this package. They are
// always wrapped with context, so compare them with errors.Is.
var (
	// ErrInvalidArgument is returned for out-of-range or otherwise illegal input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMissingArgument is returned when a required list or region is nil.
	ErrMissingArgument = errors.New("missing argument")
	// ErrDegenerate is returned when a border resolves to an empty polygon or
	// to more than one closed path.
	ErrDegenerate = errors.New("degenerate geometry")
	// ErrUnsupported is returned by operations a type deliberately disables.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrReadOnly is returned on writes through an unmodifiable LocationList.
	ErrReadOnly = errors.New("location list is read-only")
)

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func missingf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMissingArgument, format, args...)
}

func degeneratef(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDegenerate, format, args...)
}
