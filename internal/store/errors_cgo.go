// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build cgo

package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

func init() {
	classifiers = append(classifiers, classifyCGO)
}

func classifyCGO(err error) error {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return nil
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return ErrDuplicateKey
	case sqlite3.ErrConstraintForeignKey:
		return ErrForeignKey
	}
	if se.Code == sqlite3.ErrConstraint {
		return ErrConstraint
	}
	return nil
}
