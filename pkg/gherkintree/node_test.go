package gherkintree

import (
	"testing"

	messages "github.com/cucumber/messages/go/v21"
	"github.com/stretchr/testify/require"
)

func TestNode_Equal(t *testing.T) {
	t.Run("should treat same location and content as equal", func(t *testing.T) {
		a := &Node{Keyword: "Scenario", Name: "Login", Location: Location{Line: 3, Column: 3}}
		b := &Node{Keyword: "Scenario", Name: "Login", Location: Location{Line: 3, Column: 3}}

		require.True(t, a.Equal(b))
	})

	t.Run("should treat identical content at different locations as distinct", func(t *testing.T) {
		a := &Node{Keyword: "Scenario", Name: "Login", Location: Location{Line: 3}}
		b := &Node{Keyword: "Scenario", Name: "Login", Location: Location{Line: 9}}

		require.False(t, a.Equal(b))
	})

	t.Run("should treat different names at the same location as distinct", func(t *testing.T) {
		a := &Node{Keyword: "Scenario", Name: "Login", Location: Location{Line: 3}}
		b := &Node{Keyword: "Scenario", Name: "Logout", Location: Location{Line: 3}}

		require.False(t, a.Equal(b))
	})

	t.Run("should handle nil receivers and arguments", func(t *testing.T) {
		var nilNode *Node
		node := &Node{Name: "x"}

		require.True(t, nilNode.Equal(nil))
		require.False(t, nilNode.Equal(node))
		require.False(t, node.Equal(nil))
	})
}

func TestNode_FindPathTo(t *testing.T) {
	leafA := &Node{Keyword: "Scenario", Name: "A", Location: Location{Line: 3}}
	leafB := &Node{Keyword: "Scenario", Name: "B", Location: Location{Line: 7}}
	rule := &Node{Keyword: "Rule", Name: "R", Location: Location{Line: 5}, Children: []*Node{leafB}}
	feature := &Node{Keyword: "Feature", Name: "F", Location: Location{Line: 1}, Children: []*Node{leafA, rule}}

	t.Run("should return the full root-to-leaf path", func(t *testing.T) {
		path, ok := feature.FindPathTo(func(n *Node) bool { return n.Location.Line == 7 })

		require.True(t, ok)
		require.Equal(t, []*Node{feature, rule, leafB}, path)
	})

	t.Run("should return the root alone when it matches", func(t *testing.T) {
		path, ok := feature.FindPathTo(func(n *Node) bool { return n.Location.Line == 1 })

		require.True(t, ok)
		require.Equal(t, []*Node{feature}, path)
	})

	t.Run("should report a miss", func(t *testing.T) {
		path, ok := feature.FindPathTo(func(n *Node) bool { return n.Location.Line == 42 })

		require.False(t, ok)
		require.Nil(t, path)
	})

	t.Run("should search roots in order", func(t *testing.T) {
		other := &Node{Keyword: "Feature", Name: "G", Location: Location{Line: 1}}

		path, ok := FindPath([]*Node{other, feature}, func(n *Node) bool { return n.Name == "B" })

		require.True(t, ok)
		require.Equal(t, []*Node{feature, rule, leafB}, path)
	})
}

func TestFromDocument(t *testing.T) {
	t.Run("should build feature, rule and scenario nodes", func(t *testing.T) {
		doc := &messages.GherkinDocument{
			Feature: &messages.Feature{
				Keyword:  "Feature",
				Name:     "Shopping",
				Location: &messages.Location{Line: 1, Column: 1},
				Children: []*messages.FeatureChild{
					{Background: &messages.Background{Location: &messages.Location{Line: 2}}},
					{Scenario: &messages.Scenario{
						Keyword:  "Scenario",
						Name:     "Add items",
						Location: &messages.Location{Line: 5, Column: 3},
					}},
					{Rule: &messages.Rule{
						Keyword:  "Rule",
						Name:     "Refunds",
						Location: &messages.Location{Line: 9, Column: 3},
						Children: []*messages.RuleChild{
							{Scenario: &messages.Scenario{
								Keyword:  "Scenario",
								Name:     "Refund order",
								Location: &messages.Location{Line: 11, Column: 5},
							}},
						},
					}},
				},
			},
		}

		roots := FromDocument(doc)

		require.Len(t, roots, 1)
		feature := roots[0]
		require.Equal(t, "Shopping", feature.Name)
		require.Equal(t, Location{Line: 1, Column: 1}, feature.Location)
		// The background contributes no node.
		require.Len(t, feature.Children, 2)
		require.Equal(t, "Add items", feature.Children[0].Name)
		rule := feature.Children[1]
		require.Equal(t, "Refunds", rule.Name)
		require.Len(t, rule.Children, 1)
		require.Equal(t, "Refund order", rule.Children[0].Name)
	})

	t.Run("should expand outline examples into numbered rows", func(t *testing.T) {
		doc := &messages.GherkinDocument{
			Feature: &messages.Feature{
				Keyword:  "Feature",
				Name:     "Login",
				Location: &messages.Location{Line: 1},
				Children: []*messages.FeatureChild{
					{Scenario: &messages.Scenario{
						Keyword:  "Scenario Outline",
						Name:     "Login attempts",
						Location: &messages.Location{Line: 3},
						Examples: []*messages.Examples{
							{
								Keyword:  "Examples",
								Name:     "valid",
								Location: &messages.Location{Line: 8},
								TableBody: []*messages.TableRow{
									{Location: &messages.Location{Line: 10}},
									{Location: &messages.Location{Line: 11}},
								},
							},
						},
					}},
				},
			},
		}

		roots := FromDocument(doc)

		outline := roots[0].Children[0]
		require.Equal(t, "Login attempts", outline.Name)
		require.Len(t, outline.Children, 1)
		examples := outline.Children[0]
		require.Equal(t, "valid", examples.Name)
		require.Len(t, examples.Children, 2)
		require.Equal(t, "Example #1.1", examples.Children[0].Name)
		require.Equal(t, Location{Line: 10}, examples.Children[0].Location)
		require.Equal(t, "Example #1.2", examples.Children[1].Name)
	})

	t.Run("should return no roots for an empty document", func(t *testing.T) {
		require.Nil(t, FromDocument(nil))
		require.Nil(t, FromDocument(&messages.GherkinDocument{}))
	})
}
