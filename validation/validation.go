package validation

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"datachat/apperr"

	"github.com/go-playground/validator/v10"
)

const MaxPromptLength = 10000

var (
	validate = validator.New()

	AllowedExtensions = []string{".csv", ".xlsx"}
)

// Prompt trims a chat prompt and checks it is non-empty and of reasonable length.
func Prompt(prompt string) (string, error) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return "", apperr.InvalidInput("Prompt must not be empty")
	}
	if !utf8.ValidString(trimmed) {
		return "", apperr.InvalidInput("Prompt must be valid UTF-8 text")
	}
	if err := validate.Var(trimmed, "max="+strconv.Itoa(MaxPromptLength)); err != nil {
		return "", apperr.InvalidInput("Prompt is too long")
	}
	return trimmed, nil
}

// UploadName checks the uploaded file name carries a supported extension.
func UploadName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.InvalidInput("No file selected")
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return apperr.InvalidInput("Upload CSV or Excel: only .csv and .xlsx files are accepted")
}

// Struct validates request bodies tagged with `validate:"..."`.
func Struct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return apperr.Wrap(err, apperr.CodeInvalidInput, "Invalid request")
	}
	return nil
}
