/*
Package rewrite migrates a component file from a static colors import to the
useTheme() hook.

A file qualifies when it contains the marker import. Qualifying files go
through three ordered passes, each one seeing the text left by the previous:

 1. import: the first `import { colors ... } from '../theme/colors'` becomes
    the hook import. The exact form is preferred over the extended form.
 2. inject: inside the exported declaration named after the file, the theme
    line is inserted, plus the styles line when a style table exists.
 3. factory: the first static style table header becomes a factory taking
    the theme colors.

Configured literal replacements run last. The engine never touches the file
system; callers read, call Rewrite and write Result.Content back.

	engine, _ := rewrite.New(rewrite.DefaultRules())
	res, err := engine.Rewrite(ctx, "src/screens/HomeScreen.tsx", content)
	if res.Changed() { ... }
*/
package rewrite
