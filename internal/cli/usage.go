package cli

import "fmt"

// PrintUsage печатает справку по командам
func PrintUsage() {
	fmt.Println("Worklog - work session time tracker")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  worklog [OPTIONS] COMMAND [ARGS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version            Show version information")
	fmt.Println("  --db PATH            Path to database file (default: ~/.worklog/worklog.db)")
	fmt.Println("  --data-dir PATH      Data directory (default: ~/.worklog)")
	fmt.Println()
	fmt.Println("Tracking:")
	fmt.Println("  on [note...]         Start the timer, optionally with a session note")
	fmt.Println("  off                  Stop the timer and print the session duration")
	fmt.Println("  status               Show login state and the active session")
	fmt.Println()
	fmt.Println("Reports (dates are dd/mm/yyyy):")
	fmt.Println("  today                Total time worked today, live session included")
	fmt.Println("  day <date>           Total time worked on a given day")
	fmt.Println("  range <from> <to>    Total time worked over a day range, inclusive")
	fmt.Println("  first [date]         Earliest session start of a day (default: today)")
	fmt.Println("  export <from> <to>   Export completed sessions as CSV to stdout")
	fmt.Println()
	fmt.Println("Account:")
	fmt.Println("  register             Register a new user")
	fmt.Println("  login                Log in")
	fmt.Println("  logout               Log out")
	fmt.Println("  unregister           Delete the current user and all their events")
	fmt.Println()
	fmt.Println("Data management:")
	fmt.Println("  encrypt <on|off>     Toggle at-rest note encryption, migrating stored notes")
	fmt.Println("  rotate-key           Back up, then wipe the ledger and the encryption key")
	fmt.Println("  backup               Back up the database file now")
	fmt.Println("  purge                Delete all events of the current user")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  config                        Show current settings")
	fmt.Println("  config language <code>        Set interface language")
	fmt.Println("  config ui <plain|fancy>       Set output mode")
	fmt.Println("  config backup <frequency>     Set backup schedule: never, daily, monthly, every-N")
	fmt.Println("  config ai <provider> <key>    Set AI summary provider credentials")
	fmt.Println()
	fmt.Println("Misc:")
	fmt.Println("  db                   Print the database file path")
	fmt.Println("  help                 Show this help")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  worklog on fixing the parser")
	fmt.Println("  worklog off")
	fmt.Println("  worklog range 01/03/2025 31/03/2025")
	fmt.Println("  worklog export 01/03/2025 31/03/2025 > march.csv")
}
