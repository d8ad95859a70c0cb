/*
Package status owns the file system side of a migration and the per-file
outcome report.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Report  |
	| (I/O)     |           | (Entry) |
	+-----------+           +---------+

🎯 Purpose:
- Reads candidate files whole and closes them before any write
- Overwrites files atomically (temp file + rename, original mode kept)
- Optionally keeps a .bak copy of each rewritten file
- Records exactly one Entry per qualifying file

📊 Outcomes:
- rewritten: content changed
- unchanged: file qualified, every pass was a no-op
- diagnostic: a pass could not apply (for example no component declaration)
- failed: a FileSystemError stopped this file, never the whole run

🔍 Example:

	mgr := status.New()
	content, err := mgr.ReadFile(ctx, path)
	...
	err = mgr.WriteFileAtomic(ctx, path, newContent)
	mgr.Track(ctx, status.Entry{Path: path, Outcome: status.OutcomeRewritten})
*/
package status
