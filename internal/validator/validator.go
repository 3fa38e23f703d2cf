package validator

import (
	"fmt"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/ozanveral/movie-club-api/internal/domain"
)

// Validation message formats; handler tests assert against these.
const (
	ErrRequired    = "is required"
	ErrEmail       = "must be a valid email address"
	ErrMinValue    = "must be at least %s"
	ErrMaxValue    = "must be at most %s"
	ErrTimeHHMM    = "must be a time in HH:MM format"
	ErrDateYMD     = "must be a date in YYYY-MM-DD format"
	ErrReleaseYear = "must be a year between 1900 and the current year"
	ErrPassword    = "must be 8 to 25 characters long and include at least one uppercase letter, one lowercase letter, " +
		"and one number"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("time_hhmm", validateTimeHHMM)
	validator.RegisterValidation("date_ymd", validateDateYMD)
	validator.RegisterValidation("release_year", validateReleaseYear)
	validator.RegisterValidation("password", validatePassword)

	return validator
}

func validateTimeHHMM(fl validator.FieldLevel) bool {
	_, err := domain.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

func validateDateYMD(fl validator.FieldLevel) bool {
	_, err := time.Parse(domain.DateFormat, fl.Field().String())
	return err == nil
}

func validateReleaseYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= domain.MinReleaseYear && year <= int64(time.Now().Year())
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit := false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		}
	}

	return containsUpper && containsLower && containsDigit
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrEmail
	case "min", "gte":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max", "lte":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "time_hhmm":
		return ErrTimeHHMM
	case "date_ymd":
		return ErrDateYMD
	case "release_year":
		return ErrReleaseYear
	case "password":
		return ErrPassword
	default:
		return "is invalid"
	}
}
