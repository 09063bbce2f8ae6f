/*
Package status reports transfer progress and end-of-run summaries.

	            +-------------+
	            |  Reporter   |
	            | (interface) |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+------+          +-----+-----+
	|  Console   |          |    Log    |
	| (progress  |          | (zerolog  |
	|    bar)    |          |   only)   |
	+------------+          +-----------+

🎯 Purpose:
- Carries progress samples from the copy loop to the user
- Renders a live progress bar for interactive runs
- Prints the final performance summary (phase timings, throughput)
- Falls back to structured logs for quiet or scripted runs

🔄 Flow:
1. The copy engine samples throughput at a fixed byte interval
2. Samples arrive as ProgressUpdate values
3. A Reporter renders them (progress bar or log lines)
4. Finish renders the summary built from the transfer stats

⚡ Key Responsibilities:
- Progress rendering
- Summary formatting
- Human-readable units (bytes, durations, rates)

🤝 Interfaces:
- Reporter: receives Start/Update/Finish for one transfer
*/
package status
