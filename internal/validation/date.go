package validation

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout - формат дат в аргументах команд: dd/mm/yyyy
const DateLayout = "02/01/2006"

// ErrInvalidDate indicates that a date argument does not match dd/mm/yyyy
var ErrInvalidDate = errors.New("invalid date format, expected dd/mm/yyyy")

// ParseDate разбирает дату из аргумента команды в локальной таймзоне
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return parsed, nil
}
