package graph

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// RootFields lists the root field names of the operation req selects, once
// per occurrence and following fragments. Documents that do not parse, or
// name no single operation, yield nil; the executor reports those.
func RootFields(req Request) []string {
	doc, err := parser.ParseQuery(&ast.Source{Input: req.Query})
	if err != nil {
		return nil
	}
	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		return nil
	}

	var names []string
	collectRootFields(doc, op.SelectionSet, map[string]bool{}, &names)
	return names
}

func collectRootFields(doc *ast.QueryDocument, set ast.SelectionSet, seen map[string]bool, names *[]string) {
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			*names = append(*names, s.Name)
		case *ast.InlineFragment:
			collectRootFields(doc, s.SelectionSet, seen, names)
		case *ast.FragmentSpread:
			if seen[s.Name] {
				continue
			}
			seen[s.Name] = true
			if frag := doc.Fragments.ForName(s.Name); frag != nil {
				collectRootFields(doc, frag.SelectionSet, seen, names)
			}
		}
	}
}
