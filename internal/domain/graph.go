package domain

// NodeSize classifies a graph node's visual weight.
type NodeSize string

const (
	NodeSizeLarge  NodeSize = "large"
	NodeSizeMedium NodeSize = "medium"
	NodeSizeSmall  NodeSize = "small"
)

// IsValidNodeSize reports whether s is one of the closed size enumeration.
func IsValidNodeSize(s NodeSize) bool {
	switch s {
	case NodeSizeLarge, NodeSizeMedium, NodeSizeSmall:
		return true
	default:
		return false
	}
}

// Rings: 0 primary topics, 1 secondary topics, 2 detailed aspects.
const (
	RingPrimary   = 0
	RingSecondary = 1
	RingDetail    = 2
)

// IsValidRing reports whether ring is within the closed ring enumeration.
func IsValidRing(ring int) bool {
	return ring >= RingPrimary && ring <= RingDetail
}

// Node is a concept extracted from the document. ID doubles as the concise
// topic title and must be unique within one graph.
type Node struct {
	ID          string   `json:"id"`
	Size        NodeSize `json:"size"`
	Ring        int      `json:"ring"`
	Description string   `json:"description"`
}

// Link is a directed relationship between two node IDs.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// KnowledgeGraph is the principal pipeline output: concept nodes plus their
// relationships. Replaced wholesale on regeneration, never mutated in place.
type KnowledgeGraph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Validate enforces graph structural invariants on model-generated output:
// at least one node, unique node IDs, sizes and rings from the closed
// enumerations. Links referencing unknown nodes are dropped rather than
// failing the graph, since the model routinely invents a stray edge.
func (g *KnowledgeGraph) Validate() error {
	if len(g.Nodes) == 0 {
		return ErrEmptyGraph
	}

	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, ok := ids[n.ID]; ok {
			return ErrDuplicateNodeID
		}
		ids[n.ID] = struct{}{}

		if !IsValidNodeSize(n.Size) {
			return ErrInvalidNodeSize
		}
		if !IsValidRing(n.Ring) {
			return ErrInvalidNodeRing
		}
	}

	kept := g.Links[:0]
	for _, l := range g.Links {
		if _, ok := ids[l.Source]; !ok {
			continue
		}
		if _, ok := ids[l.Target]; !ok {
			continue
		}
		kept = append(kept, l)
	}
	g.Links = kept

	return nil
}
