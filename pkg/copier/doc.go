/*
Package copier implements the byte-stream file copy engine.

	+------------+     +------------+     +------------+
	|    Init    | --> |    Copy    | --> |  Cleanup   |
	| (validate, |     | (byte-by-  |     | (release,  |
	|   open)    |     |   byte)    |     |  partial)  |
	+------------+     +------------+     +------------+

🎯 Purpose:
- Validates a source/destination pair before any byte moves
- Snapshots a pre-existing destination to a backup file
- Streams the source one byte (or one rune) at a time, preserving order
- Samples throughput at a fixed byte interval
- Releases every handle on every exit path
- Times each phase for the closing performance report

🔄 Flow:
1. Pre-flight: endpoints are distinct; source exists, is regular, is
   readable; empty sources warn; pre-existing destinations are backed up;
   free space is checked
2. Handles open and the destination lock is taken
3. The loop moves one byte per iteration, polling for cancellation between
   bytes and sampling progress every ProgressInterval bytes copied
4. Cleanup closes each handle independently and removes a destination left
   shorter than the source by a failed copy

⚡ Key Responsibilities:
- Pre-flight validation with typed failures
- Ordered, lossless byte streaming
- Interruption with one-byte granularity
- Phase timing and throughput math

🤝 Interfaces:
- Locker: serializes writers of one destination
- SpaceChecker: free-space probe, swappable in tests
*/
package copier
