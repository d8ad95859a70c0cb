/*
Package config loads and validates themerc configuration.

	         +-------------+
	         |   Config    |
	         +------+------+
	                |
	   +------------+------------+
	   |            |            |
	+--+---+    +---+---+    +---+---+
	| HCL  |    | YAML  |    | JSON  |
	+------+    +-------+    +-------+

🔄 Flow:
 1. LoadConfig picks a decoder by extension (.themerc tries YAML then HCL)
 2. Unset fields get defaults (root src, extension .tsx, the two excluded
    components, node_modules ignored)
 3. Validate runs struct tags, glob checks and the rewrite rule checks
 4. Callers convert with SelectorOptions and RewriteRules

HCL configs may read the environment through env.NAME:

	root = env.APP_SRC

	rules {
	  replace {
	    from             = "colors.textPrimary"
	    to               = "colors.text"
	    file_filter_glob = "**/screens/**"
	  }
	}
*/
package config
