package cli

import (
	"context"
	"fmt"
)

// runEncrypt включает или выключает шифрование заметок "на месте":
// обе миграции проходят по всем сохраненным заметкам одной транзакцией
func (a *App) runEncrypt(ctx context.Context, args []string) error {
	if _, err := a.Auth.RequireLogin(ctx); err != nil {
		return err
	}

	if len(args) != 1 {
		return fmt.Errorf("usage: worklog encrypt <on|off>")
	}

	switch args[0] {
	case "on":
		if err := a.Notes.Enable(ctx); err != nil {
			return err
		}
		fmt.Println("Note encryption enabled. Existing notes migrated.")
		return nil
	case "off":
		if err := a.Notes.Disable(ctx); err != nil {
			return err
		}
		fmt.Println("Note encryption disabled. Notes stored in plaintext.")
		return nil
	default:
		return fmt.Errorf("usage: worklog encrypt <on|off>")
	}
}

// runRotateKey деструктивно ротирует ключ шифрования: журнал очищается
// целиком, перед очисткой снимается страховочный бэкап БД
func (a *App) runRotateKey(ctx context.Context) error {
	if _, err := a.Auth.RequireLogin(ctx); err != nil {
		return err
	}

	ok, err := confirm("Rotating the key WIPES the entire event ledger. A backup is taken first. Continue?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}

	path, err := a.Backup.Run(ctx)
	if err != nil {
		return fmt.Errorf("pre-rotation backup failed, ledger untouched: %w", err)
	}
	fmt.Printf("Backup saved to %s\n", path)

	if err := a.Notes.Rotate(ctx); err != nil {
		return err
	}

	fmt.Println("Key rotated. Event ledger wiped, encryption disabled.")
	return nil
}
