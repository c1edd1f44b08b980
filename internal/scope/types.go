package scope

// builtinScalars are the scalar type keywords every known-type set starts
// seeded with (spec §3, "Known-type set").
var builtinScalars = []string{
	"void", "char", "short", "int", "long", "float", "double", "signed", "unsigned", "bool",
}

// KnownTypes is the cross-file, monotonically-growing set of identifiers
// that behave as type names (spec §3). A single KnownTypes value is meant
// to be reused across every file processed by one invocation, since the
// tool is run on related files in one pass; see spec §9 "Cross-file
// known-types".
type KnownTypes struct {
	set map[string]bool
}

// New returns a KnownTypes seeded with the built-in scalar types, plus any
// extra names supplied (e.g. from config-declared typedefs the translator
// will never see the definition of).
func New(extra ...string) *KnownTypes {
	k := &KnownTypes{set: make(map[string]bool, len(builtinScalars)+len(extra))}
	for _, s := range builtinScalars {
		k.set[s] = true
	}
	for _, s := range extra {
		k.set[s] = true
	}
	return k
}

// Has reports whether name is a known type.
func (k *KnownTypes) Has(name string) bool { return k.set[name] }

// Add grows the known-type set with name.
func (k *KnownTypes) Add(name string) { k.set[name] = true }

// IsBuiltinKeyword reports whether name is one of the scalar type keywords
// (distinct from Has: this never changes and does not require a lookup in
// the grown set, matching the reference's builtin_types() helper).
func IsBuiltinKeyword(name string) bool {
	for _, s := range builtinScalars {
		if s == name {
			return true
		}
	}
	return false
}
