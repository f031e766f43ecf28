package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/loomhdl/loom/internal/ctxlog"
)

// Validate performs a strict parity check between every generator's
// params struct and the manifest type system: each exported field must
// carry a loom tag, tag names must be unique, and each field type must
// imply a cty type so manifest values can decode into it.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, typ := range r.Types() {
		gen := r.generators[typ]

		if gen.Build == nil {
			errs = append(errs, fmt.Sprintf("generator '%s': no build function", typ))
		}

		if gen.ParamsType == nil {
			if gen.NewParams != nil {
				errs = append(errs, fmt.Sprintf("generator '%s': NewParams is set but ParamsType is nil", typ))
			}
			continue
		}
		if gen.ParamsType.Kind() != reflect.Struct {
			errs = append(errs, fmt.Sprintf("generator '%s': params type %s is not a struct", typ, gen.ParamsType))
			continue
		}
		if gen.NewParams == nil {
			errs = append(errs, fmt.Sprintf("generator '%s': ParamsType is set but NewParams is nil", typ))
		} else {
			got := reflect.TypeOf(gen.NewParams())
			if got == nil || got.Kind() != reflect.Pointer || got.Elem() != gen.ParamsType {
				errs = append(errs, fmt.Sprintf("generator '%s': NewParams returns %v, want *%s", typ, got, gen.ParamsType))
			}
		}

		seen := make(map[string]bool)
		for i := 0; i < gen.ParamsType.NumField(); i++ {
			field := gen.ParamsType.Field(i)
			if !field.IsExported() {
				continue
			}
			tagName := strings.Split(field.Tag.Get("loom"), ",")[0]
			if tagName == "" || tagName == "-" {
				errs = append(errs, fmt.Sprintf("generator '%s': field %s has no loom tag", typ, field.Name))
				continue
			}
			if seen[tagName] {
				errs = append(errs, fmt.Sprintf("generator '%s': duplicate param name '%s'", typ, tagName))
			}
			seen[tagName] = true

			if _, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface()); err != nil {
				errs = append(errs, fmt.Sprintf("generator '%s', param '%s': cannot imply cty type from Go type %s: %v",
					typ, tagName, field.Type, err))
			}
		}

		logger.Debug("Generator validated.", "type", typ, "params", len(seen))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
