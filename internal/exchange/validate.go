package exchange

import "fmt"

// Validate checks a document before conversion and returns every problem
// found. Imported files come from outside, so unlike ids generated by the
// editor, their ids are checked for presence and uniqueness.
func Validate(doc *Document) []error {
	var errs []error

	if doc.Name == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	if doc.Root == nil {
		errs = append(errs, fmt.Errorf("root is required"))
		return errs
	}
	if doc.Viewport != nil && doc.Viewport.Scale < 0 {
		errs = append(errs, fmt.Errorf("viewport.scale must not be negative"))
	}

	seen := make(map[string]bool)
	var walk func(n *NodeDocument, path string)
	walk = func(n *NodeDocument, path string) {
		if n == nil {
			errs = append(errs, fmt.Errorf("%s: node is empty", path))
			return
		}
		switch {
		case n.ID == "":
			errs = append(errs, fmt.Errorf("%s.id is required", path))
		case seen[n.ID]:
			errs = append(errs, fmt.Errorf("%s.id %q is duplicated", path, n.ID))
		default:
			seen[n.ID] = true
		}
		for i, c := range n.Children {
			walk(c, fmt.Sprintf("%s.children[%d]", path, i))
		}
	}
	walk(doc.Root, "root")

	return errs
}
