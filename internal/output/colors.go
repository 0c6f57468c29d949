package output

import "github.com/fatih/color"

var (
	dimText   = color.New(color.Faint)
	errorText = color.New(color.FgRed)
)

func FormatDim(text string) string {
	return dimText.Sprint(text)
}

func FormatError(text string) string {
	return errorText.Sprint(text)
}
