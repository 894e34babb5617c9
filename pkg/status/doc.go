/*
Package status owns the file system side of a run: reading text, writing it
back safely, and remembering what happened to every file.

	            +-------------+
	            |   Manager   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+-----+
	|   Files   |           | Tracking |
	| read/write|           | outcomes |
	+-----------+           +----------+

🎯 Purpose:
- Reads files as UTF-8 text, rejecting anything else with ErrNotText
- Writes replacements through a temp file and a rename
- Keeps an optional .bak copy before a rewrite
- Tracks one FileStatus per path, in visit order

📝 Notes:
A file is only ever written by WriteFileAtomic, so a failed write leaves the
original bytes in place. Tracking is safe for concurrent use even though the
runner visits files one at a time.

🔍 Example:

	store := status.New(logger)

	content, err := store.ReadText(ctx, path)
	if errors.Is(err, status.ErrNotText) {
		store.TrackFile(ctx, status.FileInfo{Path: path, Status: status.StatusSkipped, Error: err})
	}

	err = store.WriteFileAtomic(ctx, path, updated)
*/
package status
