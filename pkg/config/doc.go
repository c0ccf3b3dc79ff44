/*
Package config defines the static category list formatrc works through.

	            +-------------+
	            |   Config    |
	            | (Categories)|
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Holds the category model (pattern, label, tag, tool)
- Ships the built-in categories used when no config file exists
- Parses optional config files by extension

🔄 Flow:
1. Pick a parser from the registry by file extension
2. Decode into Config
3. Validate and fill in defaults (ignore file, timeout)

🏷️ Categories come in two kinds:
- single: one Command, run once for the whole pattern
- multi-step: a list of Steps, each attempted in order

Commands may use two placeholders:
- {pattern}: the category glob, for tools that expand it themselves
- {files}: the matched files after the ignore set is applied

🔍 Example:

	cfg, err := config.LoadOrDefault(ctx, config.DefaultFile, false)
	if err != nil {
		return err
	}
	for _, c := range cfg.Categories {
		fmt.Println(c.Label, c.Kind())
	}
*/
package config
