package mux

// pathMacros maps macro names to regexp fragments for use in route
// variable definitions: {name:macro}.
var pathMacros = map[string]string{
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"int":      `[0-9]+`,
	"float":    `[0-9]*\.?[0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	"hex":      `[0-9a-fA-F]+`,
}

// expandMacro returns the regexp fragment for a macro name. Unknown
// names pass through unchanged, so custom inline patterns keep working:
// {code:[A-Z]{3}}.
func expandMacro(name string) string {
	if pattern, ok := pathMacros[name]; ok {
		return pattern
	}
	return name
}
