/*
Package config resolves the settings of a replacio run.

	+-------+   +-------------+   +-------------+
	| flags |   | environment |   | config file |
	+---+---+   +------+------+   +------+------+
	    |              |                 |
	    +--------------+--------+--------+
	                            |
	                     +------+------+
	                     |   Resolve   |
	                     |  (Settings) |
	                     +-------------+

🎯 Purpose:
- Loads optional defaults from .replacio.{yaml,yml,hcl,json,toml}
- Applies IGNORE_CASE and DRY from the environment
- Produces one immutable Settings value per run

🔄 Precedence (highest first):
1. Explicit command line flag
2. Environment variable (presence enables)
3. Config file value
4. Zero value

🤝 Interfaces:
- Parser: Format-specific parsing, registered per file extension

📝 Design Philosophy:
Resolve is a pure function. The environment is injected as a lookup function and
the config file is loaded beforehand, so the same inputs always give the same
Settings. Missing query, replacement or directory are configuration errors and
stop the run before any file is touched.
*/
package config
