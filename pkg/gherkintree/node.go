// Package gherkintree models the structural tree of a parsed Gherkin
// document: feature, rule, scenario, scenario outline, examples group
// and example row. Reporters use it to resolve the root-to-leaf path of
// a test case from its source location.
package gherkintree

import (
	"fmt"

	messages "github.com/cucumber/messages/go/v21"
)

// Location is a position in a feature file.
type Location struct {
	Line   int64
	Column int64
}

// LocationOf converts a Gherkin message location. A nil location
// converts to the zero value.
func LocationOf(loc *messages.Location) Location {
	if loc == nil {
		return Location{}
	}
	return Location{Line: loc.Line, Column: loc.Column}
}

// Node is one element of the structural tree. Nodes are immutable once
// built; reporters only ever read them.
type Node struct {
	// Keyword is the section keyword as written in the source
	// (e.g. "Feature", "Rule", "Scenario Outline"). May be empty.
	Keyword string

	// Name is the section title. May be empty.
	Name string

	// Location is where the section starts in the feature file.
	Location Location

	// Children are the nested sections, in document order. Empty for
	// leaf nodes (scenarios and example rows).
	Children []*Node
}

// Equal reports whether two nodes denote the same section. Identity is
// location plus content: nodes with identical keyword and name but a
// different source position are distinct.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.Location == other.Location && n.Keyword == other.Keyword && n.Name == other.Name
}

// FindPathTo returns the path from this node down to the first node
// (depth-first, document order) satisfying pred, including both ends.
// The second return value is false when no node matches.
func (n *Node) FindPathTo(pred func(*Node) bool) ([]*Node, bool) {
	if pred(n) {
		return []*Node{n}, true
	}
	for _, child := range n.Children {
		if path, ok := child.FindPathTo(pred); ok {
			return append([]*Node{n}, path...), true
		}
	}
	return nil, false
}

// FindPath searches a forest of root nodes and returns the first
// matching root-to-node path, or false when none of the roots contain a
// match.
func FindPath(roots []*Node, pred func(*Node) bool) ([]*Node, bool) {
	for _, root := range roots {
		if path, ok := root.FindPathTo(pred); ok {
			return path, true
		}
	}
	return nil, false
}

// FromDocument builds the structural tree for a parsed Gherkin
// document. Backgrounds are omitted: they never start a test case of
// their own. A document without a feature yields no roots.
func FromDocument(doc *messages.GherkinDocument) []*Node {
	if doc == nil || doc.Feature == nil {
		return nil
	}

	feature := &Node{
		Keyword:  doc.Feature.Keyword,
		Name:     doc.Feature.Name,
		Location: LocationOf(doc.Feature.Location),
	}
	for _, child := range doc.Feature.Children {
		if child.Rule != nil {
			feature.Children = append(feature.Children, ruleNode(child.Rule))
		} else if child.Scenario != nil {
			feature.Children = append(feature.Children, scenarioNode(child.Scenario))
		}
	}
	return []*Node{feature}
}

func ruleNode(rule *messages.Rule) *Node {
	node := &Node{
		Keyword:  rule.Keyword,
		Name:     rule.Name,
		Location: LocationOf(rule.Location),
	}
	for _, child := range rule.Children {
		if child.Scenario != nil {
			node.Children = append(node.Children, scenarioNode(child.Scenario))
		}
	}
	return node
}

// scenarioNode builds a leaf for a plain scenario, or an outline node
// whose grandchildren are the individual example rows.
func scenarioNode(scenario *messages.Scenario) *Node {
	node := &Node{
		Keyword:  scenario.Keyword,
		Name:     scenario.Name,
		Location: LocationOf(scenario.Location),
	}
	for groupIndex, examples := range scenario.Examples {
		group := &Node{
			Keyword:  examples.Keyword,
			Name:     examples.Name,
			Location: LocationOf(examples.Location),
		}
		for rowIndex, row := range examples.TableBody {
			group.Children = append(group.Children, &Node{
				Keyword:  "Example",
				Name:     fmt.Sprintf("Example #%d.%d", groupIndex+1, rowIndex+1),
				Location: LocationOf(row.Location),
			})
		}
		node.Children = append(node.Children, group)
	}
	return node
}
