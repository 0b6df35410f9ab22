package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"execlens/internal/entity"
)

// TreeNode is one node in the namespace tree. Namespace nodes group
// their members as children; leaves name an executable by ref and carry
// the verb classification used for icon selection.
type TreeNode struct {
	Label       string
	Value       string
	IsNamespace bool
	VerbType    entity.VerbType
	Children    []TreeNode
}

// BuildTree groups executables by namespace. Namespace groups come
// first, sorted by name; namespace-less executables follow as a flat
// root level. Every executable lands in exactly one leaf.
func BuildTree(execs []entity.Executable) []TreeNode {
	byNamespace := map[string][]entity.Executable{}
	var root []entity.Executable
	for _, e := range execs {
		if e.Namespace != "" {
			byNamespace[e.Namespace] = append(byNamespace[e.Namespace], e)
		} else {
			root = append(root, e)
		}
	}

	collator := collate.New(language.Und, collate.Loose)

	namespaces := make([]string, 0, len(byNamespace))
	for ns := range byNamespace {
		namespaces = append(namespaces, ns)
	}
	sort.Slice(namespaces, func(i, j int) bool {
		return collator.CompareString(namespaces[i], namespaces[j]) < 0
	})

	tree := make([]TreeNode, 0, len(namespaces)+len(root))
	for _, ns := range namespaces {
		members := byNamespace[ns]
		sortByID(members, collator)

		node := TreeNode{
			Label:       ns,
			Value:       ns,
			IsNamespace: true,
			Children:    make([]TreeNode, 0, len(members)),
		}
		for _, e := range members {
			node.Children = append(node.Children, leaf(e))
		}
		tree = append(tree, node)
	}

	sortByID(root, collator)
	for _, e := range root {
		tree = append(tree, leaf(e))
	}
	return tree
}

// sortByID orders executables by id, treating a missing id as the
// empty string.
func sortByID(execs []entity.Executable, collator *collate.Collator) {
	sort.SliceStable(execs, func(i, j int) bool {
		return collator.CompareString(execs[i].ID, execs[j].ID) < 0
	})
}

func leaf(e entity.Executable) TreeNode {
	return TreeNode{
		Label:    e.Label(),
		Value:    e.Ref,
		VerbType: e.VerbType(),
	}
}
