package nbt

import "fmt"

// Infer maps a generic Go value (map[string]any, []any, string, bool,
// int/float kinds) into its NBT tag form. Sequences become Lists (elements
// must share one underlying NBT type, else ErrListOfMixedTypes); string-keyed
// maps become Compounds. This is a convenience "infer" pass for building
// registry/data-pack payloads without hand-building each Compound.
func Infer(v any) (Tag, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return Byte(1), nil
		}
		return Byte(0), nil
	case int8:
		return Byte(x), nil
	case int16:
		return Short(x), nil
	case int32:
		return Int(x), nil
	case int:
		return Int(int32(x)), nil
	case int64:
		return Long(x), nil
	case float32:
		return Float32(x), nil
	case float64:
		return Float64(x), nil
	case string:
		return String(x), nil
	case []byte:
		return ByteArray(x), nil
	case []int32:
		return IntArray(x), nil
	case []int64:
		return LongArray(x), nil
	case map[string]any:
		c := NewCompound()
		for _, k := range orderedKeys(x) {
			child, err := Infer(x[k])
			if err != nil {
				return nil, err
			}
			c.Set(k, child)
		}
		return c, nil
	case []any:
		return inferList(x)
	default:
		return nil, fmt.Errorf("nbt: cannot infer tag for %T", v)
	}
}

func inferList(items []any) (Tag, error) {
	if len(items) == 0 {
		return &List{ElemType: TagEnd}, nil
	}
	tags := make([]Tag, len(items))
	var elemType TagType
	for i, item := range items {
		tag, err := Infer(item)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			elemType = tag.Type()
		} else if tag.Type() != elemType {
			return nil, ErrListOfMixedTypes
		}
		tags[i] = tag
	}
	return &List{ElemType: elemType, Items: tags}, nil
}

// orderedKeys returns m's keys in a deterministic (sorted) order so repeated
// Infer calls over the same map produce byte-identical output.
func orderedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	insertionSort(keys)
	return keys
}

func insertionSort(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
