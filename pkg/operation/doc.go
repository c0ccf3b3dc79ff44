/*
Package operation implements the formatting run itself.

	+--------------+     +-----------+     +-----------+
	|   Resolver   | --> |  Counter  | --> |  Invoker  |
	| (ignore set) |     |  (glob)   |     |  (tools)  |
	+--------------+     +-----------+     +-----+-----+
	                                             |
	                     +-----------+     +-----+-----+
	                     |  Summary  | <-- |   Stats   |
	                     | (console) |     |  + Buffer |
	                     +-----------+     +-----------+

🎯 Purpose:
- Runs every category exactly once, one after another
- Folds each outcome into run statistics and a buffered detail log
- Keeps the progress bar in charge of the terminal until the end

🔄 Flow:
1. Initializing: resolve the ignore set, say where it came from
2. Counting: total the files for display, one progress step per category
3. Processing: advance, invoke, fold
4. Finalizing: push progress to the end and stop it
5. Reporting: flush the detail log, print the summary

⚠️ Failures:
A category that fails is recorded and the run carries on. A progress sink
error, a panic or a cancelled context aborts the run: progress is stopped,
the partial log is flushed and the error is returned.

🔍 Example:

	op, err := operation.New(operation.Options{
		Categories: cfg.Categories,
		Resolver:   resolver,
		Counter:    files,
		Invoker:    formatter.New(files, runner),
		Progress:   status.NewBar(os.Stdout),
	})
	report, err := op.Run(ctx)
*/
package operation
