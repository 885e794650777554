package tool

import "github.com/flemzord/walletclaw/internal/provider"

// schemaMetaKeys are JSON-schema metadata keys the model API rejects as
// unknown keywords. They carry no parameter semantics and are stripped
// from each tool's schema before declaration.
var schemaMetaKeys = []string{"$schema", "additionalProperties"}

// Declarations translates tool server descriptors into model-side tool
// declarations. Each descriptor produces exactly one declaration, and the
// parameter schema is copied with metadata keys removed; all other keys
// pass through unchanged. The input descriptors are never mutated.
func Declarations(descs []Descriptor) []provider.ToolDeclaration {
	decls := make([]provider.ToolDeclaration, 0, len(descs))
	for _, d := range descs {
		decls = append(decls, provider.ToolDeclaration{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  cleanSchema(d.InputSchema),
		})
	}
	return decls
}

// cleanSchema returns a copy of the schema with metadata keys removed.
// Only top-level keys are stripped, matching what the model API rejects.
func cleanSchema(schema map[string]any) map[string]any {
	if schema == nil {
		return nil
	}
	cleaned := make(map[string]any, len(schema))
	for k, v := range schema {
		cleaned[k] = v
	}
	for _, k := range schemaMetaKeys {
		delete(cleaned, k)
	}
	return cleaned
}
