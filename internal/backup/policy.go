// Package backup решает, когда пора делать резервную копию БД,
// и выполняет само копирование файла в каталог бэкапов.
package backup

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FrequencyKind определяет вид расписания бэкапов
type FrequencyKind string

const (
	// Never - бэкапы по расписанию отключены
	Never FrequencyKind = "never"
	// Daily - не чаще раза в календарный день
	Daily FrequencyKind = "daily"
	// Monthly - не чаще раза в календарный месяц
	Monthly FrequencyKind = "monthly"
	// Custom - раз в N целых месяцев
	Custom FrequencyKind = "custom"
)

// Frequency - разобранное значение настройки backup.frequency
type Frequency struct {
	Kind FrequencyKind
	// Months - интервал в месяцах, только для Custom
	Months int
}

// ParseFrequency разбирает значение настройки:
// never | daily | monthly | every-N (N месяцев, N >= 1)
func ParseFrequency(value string) (Frequency, error) {
	switch value {
	case "never", "":
		return Frequency{Kind: Never}, nil
	case "daily":
		return Frequency{Kind: Daily}, nil
	case "monthly":
		return Frequency{Kind: Monthly}, nil
	}

	if n, ok := strings.CutPrefix(value, "every-"); ok {
		months, err := strconv.Atoi(n)
		if err != nil || months < 1 {
			return Frequency{}, fmt.Errorf("invalid backup interval %q, expected every-N with N >= 1", value)
		}
		return Frequency{Kind: Custom, Months: months}, nil
	}

	return Frequency{}, fmt.Errorf("unknown backup frequency %q", value)
}

// String renders the frequency back to its settings form.
func (f Frequency) String() string {
	if f.Kind == Custom {
		return fmt.Sprintf("every-%d", f.Months)
	}
	return string(f.Kind)
}

// Due решает, пора ли делать бэкап.
// hasLast=false - bootstrap: бэкапа еще не было, значит пора сразу
// (кроме Never, который не срабатывает никогда).
func Due(freq Frequency, last time.Time, hasLast bool, now time.Time) bool {
	if freq.Kind == Never {
		return false
	}
	if !hasLast {
		return true
	}

	switch freq.Kind {
	case Daily:
		// Пора, когда текущая календарная дата позже даты последнего бэкапа
		ny, nm, nd := now.Date()
		ly, lm, ld := last.Date()
		return ny > ly || (ny == ly && (nm > lm || (nm == lm && nd > ld)))
	case Monthly:
		// Пора, когда (год, месяц) отличаются
		return now.Year() != last.Year() || now.Month() != last.Month()
	case Custom:
		return monthsBetween(last, now) >= freq.Months
	}

	return false
}

// monthsBetween считает разницу в целых календарных месяцах
func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
