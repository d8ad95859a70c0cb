/*
Package operation runs the theme migration over a source tree.

	+-------------+      +-----------+      +-----------+
	|  selector   +----->+  runner   +----->+  rewrite  |
	| (Walk root) |      | (sync or  |      |  (passes) |
	+-------------+      | errgroup) |      +-----+-----+
	                     +-----------+            |
	                                        +-----+-----+
	                                        |  status   |
	                                        | (write +  |
	                                        |  report)  |
	                                        +-----------+

🔄 Flow:
 1. The selector yields candidate paths lazily
 2. The runner hands each path to processFile, in order or on a bounded
    errgroup
 3. processFile reads, rewrites, writes (or builds a patch in dry runs) and
    tracks exactly one entry for each file carrying the marker
 4. Entries are rendered sorted by path, then the summary table

A missing or unreadable root fails Execute. Everything that goes wrong with a
single file is recorded as that file's outcome and the walk continues.
*/
package operation
