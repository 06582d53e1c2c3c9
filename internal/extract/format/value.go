package format

// Kind discriminates the generic tree value.
type Kind int

const (
	KindScalar Kind = iota
	KindMap
	KindSeq
)

// Value is a tagged union over {mapping, sequence, scalar} used to walk
// arbitrary structured responses without ambient dynamic typing.
type Value struct {
	Kind   Kind
	Map    map[string]Value
	Seq    []Value
	Str    string
	Num    float64
	IsNum  bool
	IsNull bool
}

// FromJSON converts a decoded encoding/json value into the tagged tree.
func FromJSON(raw any) Value {
	switch v := raw.(type) {
	case map[string]any:
		m := make(map[string]Value, len(v))
		for k, child := range v {
			m[k] = FromJSON(child)
		}
		return Value{Kind: KindMap, Map: m}
	case []any:
		seq := make([]Value, 0, len(v))
		for _, child := range v {
			seq = append(seq, FromJSON(child))
		}
		return Value{Kind: KindSeq, Seq: seq}
	case string:
		return Value{Kind: KindScalar, Str: v}
	case float64:
		return Value{Kind: KindScalar, Num: v, IsNum: true}
	case bool:
		if v {
			return Value{Kind: KindScalar, Str: "true"}
		}
		return Value{Kind: KindScalar, Str: "false"}
	case nil:
		return Value{Kind: KindScalar, IsNull: true}
	default:
		return Value{Kind: KindScalar}
	}
}

// Lookup finds a value for any of the candidate keys, searching the tree
// depth-first. Direct keys of a mapping win before descent; the visit order
// of nested mappings is unspecified. Sequences search their first element
// only.
func Lookup(v Value, keys []string) (Value, bool) {
	switch v.Kind {
	case KindMap:
		for _, k := range keys {
			if child, ok := v.Map[k]; ok {
				return child, true
			}
		}
		for _, child := range v.Map {
			if found, ok := Lookup(child, keys); ok {
				return found, true
			}
		}
	case KindSeq:
		if len(v.Seq) > 0 {
			return Lookup(v.Seq[0], keys)
		}
	}
	return Value{}, false
}
