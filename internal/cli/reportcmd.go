package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/avdeyev/worklog/internal/models"
	"github.com/avdeyev/worklog/internal/report"
	"github.com/avdeyev/worklog/internal/validation"
)

// runToday печатает суммарное время за сегодня с учетом живой сессии
func (a *App) runToday(ctx context.Context) error {
	user, err := a.Auth.RequireLogin(ctx)
	if err != nil {
		return err
	}

	total, err := a.Tracker.DailyTotal(ctx, user.ID, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Time worked today: %s\n", models.FormatDuration(total))
	return nil
}

// runDay печатает суммарное время за указанный день (dd/mm/yyyy)
func (a *App) runDay(ctx context.Context, args []string) error {
	user, err := a.Auth.RequireLogin(ctx)
	if err != nil {
		return err
	}

	if len(args) != 1 {
		return fmt.Errorf("usage: worklog day <dd/mm/yyyy>")
	}

	day, err := validation.ParseDate(args[0])
	if err != nil {
		return err
	}

	total, err := a.Tracker.DailyTotal(ctx, user.ID, day)
	if err != nil {
		return err
	}

	fmt.Printf("Time worked on %s: %s\n", day.Format(validation.DateLayout), models.FormatDuration(total))
	return nil
}

// runRange печатает суммарное время за диапазон дней включительно
func (a *App) runRange(ctx context.Context, args []string) error {
	user, err := a.Auth.RequireLogin(ctx)
	if err != nil {
		return err
	}

	from, to, err := parseRangeArgs(args, "range")
	if err != nil {
		return err
	}

	total, err := a.Tracker.RangeTotal(ctx, user.ID, from, to)
	if err != nil {
		return err
	}

	fmt.Printf("Time worked from %s to %s: %s\n",
		from.Format(validation.DateLayout), to.Format(validation.DateLayout),
		models.FormatDuration(total))
	return nil
}

// runFirst печатает время первого START за день (по умолчанию - сегодня)
func (a *App) runFirst(ctx context.Context, args []string) error {
	user, err := a.Auth.RequireLogin(ctx)
	if err != nil {
		return err
	}

	day := time.Now()
	if len(args) > 0 {
		day, err = validation.ParseDate(args[0])
		if err != nil {
			return err
		}
	}

	first, ok, err := a.Tracker.FirstStartOfDay(ctx, user.ID, day)
	if err != nil {
		return err
	}

	if !ok {
		fmt.Printf("No sessions started on %s.\n", day.Format(validation.DateLayout))
		return nil
	}

	fmt.Printf("First start on %s: %s\n", day.Format(validation.DateLayout), first.Format("15:04:05"))
	return nil
}

// runExport выгружает завершенные сессии диапазона в CSV на stdout
func (a *App) runExport(ctx context.Context, args []string) error {
	user, err := a.Auth.RequireLogin(ctx)
	if err != nil {
		return err
	}

	from, to, err := parseRangeArgs(args, "export")
	if err != nil {
		return err
	}

	sessions, err := a.Tracker.Sessions(ctx, user.ID, from, to)
	if err != nil {
		return err
	}

	return report.WriteSessionsCSV(os.Stdout, sessions)
}

// parseRangeArgs разбирает пару дат <from> <to> и проверяет порядок
func parseRangeArgs(args []string, command string) (time.Time, time.Time, error) {
	if len(args) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("usage: worklog %s <dd/mm/yyyy> <dd/mm/yyyy>", command)
	}

	from, err := validation.ParseDate(args[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	to, err := validation.ParseDate(args[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("range end %s is before start %s", args[1], args[0])
	}

	return from, to, nil
}
