// Package errors provides the error taxonomy and exit codes for sandbox-gen.
//
// Every fatal error carries an exit code so main can translate an error
// returned from the command layer into the process exit status:
//
//	if err := cmd.Execute(); err != nil {
//		os.Exit(errors.GetExitCode(err))
//	}
//
// Task-level failures (process errors, filesystem errors) are recovered at
// the task boundary by the orchestrator and do not reach main; only
// orchestrator-level failures (catalog errors, setup errors) terminate the
// run with a non-zero status.
package errors
