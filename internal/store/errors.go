// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Constraint violations reported by either driver.
var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrForeignKey   = errors.New("foreign key violation")
	ErrConstraint   = errors.New("constraint violation")
)

// classifiers map driver errors to the sentinels above. The cgo driver
// registers its own classifier when it is compiled in.
var classifiers = []func(error) error{classifyModernc}

// Classify wraps a driver constraint error with the matching sentinel so
// callers can test it with errors.Is. Other errors pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, classify := range classifiers {
		if sentinel := classify(err); sentinel != nil {
			return fmt.Errorf("%w: %w", sentinel, err)
		}
	}
	return err
}

func classifyModernc(err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return nil
	}
	switch se.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
		return ErrDuplicateKey
	case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrForeignKey
	}
	if se.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT {
		return ErrConstraint
	}
	return nil
}
