/*
Package operation drives a run: it lists the files under a directory and feeds
each one through the text engine in either dry-run or replace mode.

	+-------------+
	|   Lister    |
	|   (walk)    |
	+------+------+
	       |
	+------+------+
	|  Operation  |
	| text.Engine |
	+------+------+
	       |
	+------+------+
	|    Store    |
	|  (status)   |
	+-------------+

🔄 Flow:
1. Lists files from the configured directory
2. Reads each file as UTF-8 text through the Store
3. Reports the matching lines of the original content
4. In replace mode, rewrites files that changed (backup and diff optional)
5. Prints "Updated N files" or "Found matches in N files"

⚡ Rules:
- A dry run never calls the replacer and never writes
- One file failing to read or write never stops the others
- Cancellation is checked between files, never inside one

🔍 Example:

	op, err := operation.New(operation.Options{
		Settings: settings,
		Store:    status.New(zerolog.Ctx(ctx)),
	})
	if err != nil {
		return err
	}
	summary, err := op.Run(log.NewContext(ctx, console))
*/
package operation
