// Package model defines the pipeline topology: typed nodes, directed edges,
// and the per-node description table used by the detail view.
package model

import "fmt"

// Category classifies a pipeline node. The set is closed: the legend, the
// color table, and validation are all driven by this enumeration.
type Category string

const (
	CategoryIdeation        Category = "ideation"
	CategoryUtilities       Category = "utilities"
	CategoryAPIIntegrations Category = "api-integrations"
	CategoryGeneration      Category = "generation"
	CategoryAnalysis        Category = "analysis"
	CategoryKnowledgeBase   Category = "knowledge-base"
)

// Categories lists every registered category in legend order.
// The legend is always rendered from this registry, not from the categories
// present in a particular topology.
var Categories = []Category{
	CategoryIdeation,
	CategoryUtilities,
	CategoryAPIIntegrations,
	CategoryGeneration,
	CategoryAnalysis,
	CategoryKnowledgeBase,
}

// categoryColors is the exhaustive color table. Every registered category
// must have an entry; Color panics on an unregistered category so a missing
// entry fails fast instead of rendering with an undefined style.
var categoryColors = map[Category]string{
	CategoryIdeation:        "#8b5cf6",
	CategoryUtilities:       "#64748b",
	CategoryAPIIntegrations: "#f59e0b",
	CategoryGeneration:      "#10b981",
	CategoryAnalysis:        "#3b82f6",
	CategoryKnowledgeBase:   "#ec4899",
}

// categoryLabels maps categories to their display names.
var categoryLabels = map[Category]string{
	CategoryIdeation:        "Ideation",
	CategoryUtilities:       "Utilities",
	CategoryAPIIntegrations: "API Integrations",
	CategoryGeneration:      "Generation",
	CategoryAnalysis:        "Analysis",
	CategoryKnowledgeBase:   "Knowledge Base",
}

// Valid reports whether c is one of the registered categories.
func (c Category) Valid() bool {
	_, ok := categoryColors[c]
	return ok
}

// Color returns the render color for the category.
func (c Category) Color() string {
	color, ok := categoryColors[c]
	if !ok {
		panic(fmt.Sprintf("model: unregistered category %q", c))
	}
	return color
}

// DisplayName returns the human-readable name for the category.
func (c Category) DisplayName() string {
	label, ok := categoryLabels[c]
	if !ok {
		panic(fmt.Sprintf("model: unregistered category %q", c))
	}
	return label
}

// Node is a single stage or component of the pipeline.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Label    string   `json:"label" yaml:"label"`
	Subtitle string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Category Category `json:"category" yaml:"category"`
}

// Edge is a directed connection between two nodes. Direction is meaningful:
// data flows from Source to Target.
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Description is the detail-view content for a node. Nodes without an entry
// in the description table are simply not inspectable.
type Description struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Details     []string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Topology is the complete diagram definition. It is immutable input:
// constructed once, validated once, and handed to the layout engine.
type Topology struct {
	Name         string                 `json:"name" yaml:"name"`
	Nodes        []Node                 `json:"nodes" yaml:"nodes"`
	Edges        []Edge                 `json:"edges" yaml:"edges"`
	Descriptions map[string]Description `json:"descriptions,omitempty" yaml:"descriptions,omitempty"`
}

// Node returns the node with the given id.
func (t *Topology) Node(id string) (Node, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Describe looks up a node's description. A missing entry is not an error;
// the caller treats it as "no detail available".
func (t *Topology) Describe(id string) (Description, bool) {
	d, ok := t.Descriptions[id]
	return d, ok
}

// LegendEntry is one category swatch in the legend.
type LegendEntry struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Color    string   `json:"color"`
}

// Legend returns the fixed category legend. It is independent of any
// topology: all registered categories appear, in registry order.
func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(Categories))
	for _, c := range Categories {
		entries = append(entries, LegendEntry{
			Category: c,
			Label:    c.DisplayName(),
			Color:    c.Color(),
		})
	}
	return entries
}
