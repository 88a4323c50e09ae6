package prompt

import (
	"github.com/manifoldco/promptui"
)

// SelectOption is one entry of a menu.
type SelectOption struct {
	Label       string
	Value       string
	Description string
}

func selectTemplates(withDetails bool) *promptui.SelectTemplates {
	t := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label | white }}",
		Selected: "* {{ .Label | green }}",
	}
	if withDetails {
		t.Details = `
{{ "Description:" | faint }}	{{ .Description }}`
	}
	return t
}

// Select shows a menu and returns the chosen option's Value.
func Select(label string, options []SelectOption) (string, error) {
	prompt := promptui.Select{
		Label:        label,
		Items:        options,
		Templates:    selectTemplates(len(options) > 0 && options[0].Description != ""),
		Size:         len(options),
		HideSelected: true,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return "", wrapError(err)
	}

	return options[i].Value, nil
}
