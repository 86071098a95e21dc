package cli

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	Color     bool   `help:"Colorize terminal output." default:"true" negatable:"" env:"FELEDGER_COLOR"`
	LogLevel  string `help:"Log level for the web server (${enum})." enum:"debug,info,warn,error" default:"info" env:"FELEDGER_LOG_LEVEL"`
	LogFormat string `help:"Log format for the web server (${enum})." enum:"console,json" default:"console" env:"FELEDGER_LOG_FORMAT"`
}

type Commands struct {
	Globals

	Check    CheckCmd    `cmd:"" help:"Parse a ledger file and check that every transaction balances."`
	Balances BalancesCmd `cmd:"" help:"Print the balance of every account."`
	Format   FormatCmd   `cmd:"" help:"Format a ledger file to align amounts."`
	Doctor   DoctorCmd   `cmd:"" help:"Doctor utilities for debugging ledger files."`
	Web      WebCmd      `cmd:"" help:"Start a web server."`
}

// CommandError signals a command failure with a specific exit code.
// Commands return this after handling all output (printing errors/warnings to stderr).
// Main centralizes exit handling instead of commands calling os.Exit directly.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}
