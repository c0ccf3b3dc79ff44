/*
Package status renders run progress for formatrc.

	            +--------------+
	            | Orchestrator |
	            +------+-------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+-----+
	|   Bar    | |  Lines   | |  Spinner  |
	|  (TTY)   | | (CI/log) | | (analyze) |
	+----------+ +----------+ +-----------+

🎯 Purpose:
- Shows how far a run has progressed through its categories
- Keeps per-category noise out of the terminal while a run is in flight

🔄 Flow:
1. Start(total) once the number of steps is known
2. Advance(step, label) before each category and once more to finalize
3. Stop() before any summary is printed

🤝 Interfaces:
- ProgressFormatter: turns a position into a text line
*/
package status
