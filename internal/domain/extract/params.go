package extract

import (
	"strings"

	"github.com/docscan/docscan/internal/domain"
)

// splitParams tokenizes a C#-style parameter list. Every comma splits, generic
// arguments included, and each piece keeps only its first two whitespace
// tokens as (type, name). Pieces with fewer than two tokens are dropped.
func splitParams(list string) []domain.Parameter {
	params := []domain.Parameter{}
	if strings.TrimSpace(list) == "" {
		return params
	}
	for _, piece := range strings.Split(list, ",") {
		parts := strings.Fields(piece)
		if len(parts) < 2 {
			continue
		}
		params = append(params, domain.Parameter{Type: parts[0], Name: parts[1]})
	}
	return params
}

// splitTypedParams tokenizes a TypeScript-style list of "name: Type" pieces.
// Modifiers and decorators before the name are discarded, as is anything after
// the first token of the type. Pieces without an annotation are dropped.
func splitTypedParams(list string) []domain.Parameter {
	params := []domain.Parameter{}
	if strings.TrimSpace(list) == "" {
		return params
	}
	for _, piece := range strings.Split(list, ",") {
		left, right, ok := strings.Cut(piece, ":")
		if !ok {
			continue
		}
		names := strings.Fields(left)
		types := strings.Fields(right)
		if len(names) == 0 || len(types) == 0 {
			continue
		}
		name := strings.TrimSuffix(names[len(names)-1], "?")
		params = append(params, domain.Parameter{Type: types[0], Name: name})
	}
	return params
}
