// Package forms provides the huh prompts vcut shows before touching files.
package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// NewOverwriteForm asks whether an existing file at path may be replaced.
// The answer is bound to overwrite.
func NewOverwriteForm(path string, overwrite *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Output already exists. Overwrite?").
				Description(path).
				Affirmative("Overwrite").
				Negative("Cancel").
				Value(overwrite),
		),
	).WithTheme(Theme())
}

// ConfirmOverwrite runs NewOverwriteForm and returns the answer. Aborting the
// form with ctrl+c counts as no.
func ConfirmOverwrite(path string) (bool, error) {
	var overwrite bool
	if err := NewOverwriteForm(path, &overwrite).Run(); err != nil {
		if err == huh.ErrUserAborted {
			return false, nil
		}
		return false, fmt.Errorf("overwrite prompt: %w", err)
	}
	return overwrite, nil
}
