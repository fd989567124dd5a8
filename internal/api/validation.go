package api

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

// heightPattern accepts 5'10" style heights; two apostrophes may stand in
// for the double quote.
var heightPattern = regexp.MustCompile(`^\d'\d{1,2}(''|")$`)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the custom binding tags used by request types:
// height and exercise_level. Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("height", validateHeight); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("exercise_level", validateExerciseLevel)
	})
	return registerErr
}

func validateHeight(fl validator.FieldLevel) bool {
	return heightPattern.MatchString(fl.Field().String())
}

func validateExerciseLevel(fl validator.FieldLevel) bool {
	return nutrition.ExerciseLevel(fl.Field().String()).Valid()
}
