// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"fmt"

	perrors "pebbleshell/cli/internal/errors"
)

// PresentError formats an error for user display with masking.
// Typed errors show only their message and cause; the kind is for callers.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	var e *perrors.E
	if errors.As(err, &e) {
		msg = e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
	}
	if context == "" {
		return Mask(msg)
	}
	return fmt.Sprintf("%s: %s", context, Mask(msg))
}
