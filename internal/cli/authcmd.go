package cli

import (
	"context"
	"fmt"
)

// runRegister интерактивно регистрирует нового пользователя
func (a *App) runRegister(ctx context.Context) error {
	username, err := readInput("Username: ")
	if err != nil {
		return err
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	confirmPassword, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}

	result, err := a.Auth.Register(ctx, username, password, confirmPassword)
	if err != nil {
		return err
	}

	fmt.Printf("User %s registered.\n", result.User.Username)
	if result.AdoptedEvents > 0 {
		fmt.Printf("Adopted %d existing events recorded before registration.\n", result.AdoptedEvents)
	}

	fmt.Println("Run 'worklog login' to start tracking.")
	return nil
}

// runLogin выполняет вход и сохраняет локальную сессию
func (a *App) runLogin(ctx context.Context) error {
	username, err := readInput("Username: ")
	if err != nil {
		return err
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := a.Auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s.\n", user.Username)
	return nil
}

// runLogout завершает локальную сессию
func (a *App) runLogout(ctx context.Context) error {
	if err := a.Auth.Logout(ctx); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}

// runUnregister удаляет текущего пользователя вместе с его событиями.
// Деструктивно, поэтому требует явного подтверждения.
func (a *App) runUnregister(ctx context.Context) error {
	user, err := a.Auth.RequireLogin(ctx)
	if err != nil {
		return err
	}

	ok, err := confirm(fmt.Sprintf("Delete user %s and ALL their tracked events?", user.Username))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}

	if err := a.Auth.Unregister(ctx); err != nil {
		return err
	}

	fmt.Printf("User %s deleted.\n", user.Username)
	return nil
}
