package registry

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// DecodeParams fills a fresh params struct of the generator from manifest
// values. Unknown parameter names and unconvertible values are errors;
// fields absent from params keep their zero value. The returned value is
// what Build receives, nil for paramless generators.
func (gen *Generator) DecodeParams(params map[string]cty.Value) (any, error) {
	if gen.ParamsType == nil {
		if len(params) > 0 {
			names := sortedKeys(params)
			return nil, fmt.Errorf("generator '%s' takes no params, got: %s", gen.Type, strings.Join(names, ", "))
		}
		return nil, nil
	}

	target := gen.NewParams()
	structVal := reflect.ValueOf(target).Elem()

	fields := make(map[string]reflect.StructField)
	for i := 0; i < gen.ParamsType.NumField(); i++ {
		field := gen.ParamsType.Field(i)
		if !field.IsExported() {
			continue
		}
		tagName := strings.Split(field.Tag.Get("loom"), ",")[0]
		if tagName != "" && tagName != "-" {
			fields[tagName] = field
		}
	}

	for _, name := range sortedKeys(params) {
		field, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("unknown param '%s' for generator '%s'", name, gen.Type)
		}
		if err := decodeValue(params[name], structVal.FieldByIndex(field.Index).Addr().Interface()); err != nil {
			return nil, fmt.Errorf("param '%s' of generator '%s': %w", name, gen.Type, err)
		}
	}
	return target, nil
}

// decodeValue converts val to the cty type implied by the Go target and
// decodes it in place.
func decodeValue(val cty.Value, goVal any) error {
	impliedType, err := gocty.ImpliedType(reflect.ValueOf(goVal).Elem().Interface())
	if err != nil {
		return gocty.FromCtyValue(val, goVal)
	}
	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w",
			val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}
	return gocty.FromCtyValue(convertedVal, goVal)
}

func sortedKeys(m map[string]cty.Value) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
