package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/vidinsight/vidinsight/pkg/youtube"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()

	// youtubeurl accepts any URL shape the extractor can resolve to a
	// video ID, plus bare 11-character IDs.
	_ = v.RegisterValidation("youtubeurl", func(fl validator.FieldLevel) bool {
		return youtube.ParseVideoID(fl.Field().String()) != ""
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
