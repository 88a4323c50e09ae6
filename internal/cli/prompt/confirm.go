package prompt

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question. Answering "n" returns false without error.
func Confirm(label string, defaultYes bool) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if defaultYes {
		prompt.Default = "y"
	}

	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case err == promptui.ErrAbort:
		return false, nil
	default:
		return false, wrapError(err)
	}
}

// ConfirmDanger requires typing confirmWord, used before deleting a disk
// together with its files.
func ConfirmDanger(label, confirmWord string) (bool, error) {
	prompt := promptui.Prompt{
		Label: fmt.Sprintf("%s (type '%s' to confirm)", label, confirmWord),
		Validate: func(input string) error {
			if input != confirmWord {
				return fmt.Errorf("type '%s' to confirm", confirmWord)
			}
			return nil
		},
	}

	result, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, wrapError(err)
	}

	return result == confirmWord, nil
}

// ConfirmWithForce skips the question when force is set.
func ConfirmWithForce(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label, false)
}
