package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avdeyev/worklog/internal/models"
)

// runOn запускает таймер. Все аргументы после команды - заметка к сессии.
func (a *App) runOn(ctx context.Context, args []string) error {
	user, err := a.Auth.RequireLogin(ctx)
	if err != nil {
		return err
	}

	note := strings.TrimSpace(strings.Join(args, " "))

	event, err := a.Tracker.Start(ctx, user.ID, note)
	if err != nil {
		return err
	}

	fmt.Printf("Timer started at %s\n", event.Timestamp.Format("15:04:05"))
	return nil
}

// runOff останавливает таймер и печатает длительность сессии
func (a *App) runOff(ctx context.Context) error {
	user, err := a.Auth.RequireLogin(ctx)
	if err != nil {
		return err
	}

	event, duration, err := a.Tracker.Stop(ctx, user.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Timer stopped at %s\n", event.Timestamp.Format("15:04:05"))
	fmt.Printf("Session duration: %s\n", models.FormatDuration(duration))
	return nil
}

// runStatus показывает статус авторизации и активной сессии.
// Работает и без логина - одна из немногих команд вне auth gate.
func (a *App) runStatus(ctx context.Context) error {
	user, err := a.Auth.CurrentUser(ctx)
	if err != nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("Logged in as %s\n", user.Username)

	since, active, err := a.Tracker.ActiveSince(ctx, user.ID)
	if err != nil {
		return err
	}

	if !active {
		fmt.Println("Timer is inactive.")
		return nil
	}

	fmt.Printf("Current session: %s (started at %s)\n",
		models.FormatDuration(time.Since(since)), since.Format("15:04:05"))
	return nil
}
