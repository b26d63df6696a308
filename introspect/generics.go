package introspect

import "strings"

// Generic types reach the engine fully instantiated: the Go runtime has
// already substituted every type parameter by the time a reflect.Type
// exists, so no binding map needs to be threaded through traversal.
// What remains is deterministic naming. An instantiated type's reflect
// name carries the argument list in brackets, with full package paths:
//
//	Box[github.com/acme/models.User]
//	Pair[int,[]github.com/acme/models.User]
//
// schemaName canonicalizes that into a stable output name (BoxUser,
// PairIntUserList) so the same instantiation yields the same name at
// every call site, and distinct argument tuples yield distinct names.

// schemaName returns the canonical schema name for a type name, or the
// name unchanged when it is not a generic instantiation.
func schemaName(name string) string {
	idx := strings.IndexByte(name, '[')
	if idx < 0 {
		return name
	}

	base := name[:idx]
	inner := name[idx+1 : len(name)-1]

	var b strings.Builder
	b.WriteString(base)
	for _, arg := range splitArgs(inner) {
		b.WriteString(argName(arg))
	}
	return b.String()
}

// splitArgs splits a bracket-enclosed argument list on top-level commas.
func splitArgs(inner string) []string {
	var (
		args  []string
		depth int
		start int
	)
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, inner[start:i])
				start = i + 1
			}
		}
	}
	args = append(args, inner[start:])
	return args
}

// argName canonicalizes a single type argument. Pointers are stripped,
// slices gain a List suffix, maps gain a Map suffix keyed on the value
// type, package paths are dropped, and nested instantiations recurse.
func argName(arg string) string {
	arg = strings.TrimSpace(arg)
	arg = strings.TrimPrefix(arg, "*")

	if rest, ok := strings.CutPrefix(arg, "[]"); ok {
		return argName(rest) + "List"
	}

	if rest, ok := strings.CutPrefix(arg, "map["); ok {
		// Skip the key type; objects are always string-keyed in output.
		depth := 1
		for i := 0; i < len(rest); i++ {
			switch rest[i] {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					return argName(rest[i+1:]) + "Map"
				}
			}
		}
		return "Map"
	}

	// Nested generic instantiation.
	if idx := strings.IndexByte(arg, '['); idx >= 0 {
		return capitalize(schemaName(stripPkgPath(arg[:idx]) + arg[idx:]))
	}

	return capitalize(stripPkgPath(arg))
}

// stripPkgPath drops a leading package path: "github.com/x/y.User" -> "User".
func stripPkgPath(s string) string {
	if dot := strings.LastIndexByte(s, '.'); dot >= 0 {
		return s[dot+1:]
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
