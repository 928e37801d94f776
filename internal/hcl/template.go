package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// renderTemplate evaluates the template expression with every interpolated
// name bound to its own `${name}` placeholder, so `"out_${m}.tif"` in a sweep
// file yields the same text as on the command line. Names are not checked
// here; the expander reports unknown ones. The boolean result is false when
// the attribute is absent.
func renderTemplate(expr hcl.Expression) (string, bool, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	vars := make(map[string]cty.Value)

	for _, traversal := range expr.Variables() {
		if len(traversal) != 1 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid template reference",
				Detail:   "A template may only interpolate option names, such as ${name}.",
				Subject:  traversal.SourceRange().Ptr(),
			})
			continue
		}
		name := traversal.RootName()
		vars[name] = cty.StringVal("${" + name + "}")
	}
	if diags.HasErrors() {
		return "", false, diags
	}

	val, valDiags := expr.Value(&hcl.EvalContext{Variables: vars})
	diags = append(diags, valDiags...)
	if valDiags.HasErrors() {
		return "", false, diags
	}
	if val.IsNull() {
		return "", false, diags
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil || !str.IsKnown() || str.IsNull() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid template value",
			Detail:   fmt.Sprintf("The template must be a string, got %s.", val.Type().FriendlyName()),
			Subject:  expr.Range().Ptr(),
		})
		return "", false, diags
	}
	return str.AsString(), true, diags
}
