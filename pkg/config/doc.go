/*
Package config manages configuration parsing and validation for bytecp.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |  JSON   | |    HCL    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Loads transfer defaults from a file
- Validates and normalizes configuration values
- Supports multiple config formats behind one interface
- Falls back to built-in defaults when no file exists

🔄 Flow:
1. Reads configuration from file
2. Dispatches to a format parser by filename
3. Validates values and fills in defaults
4. Hands the validated config to the command layer

⚡ Key Responsibilities:
- Configuration parsing
- Default value management
- Path normalization
- Format abstraction

🤝 Interfaces:
- Parser: Format-specific parsing
- Config: Validated settings access
*/
package config
