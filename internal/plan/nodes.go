package plan

// Node is the base interface for all access-plan nodes
type Node interface {
	// Children returns child nodes for tree walking
	Children() []Node

	// Metadata returns attached metadata (never nil)
	Metadata() map[string]any

	// NodeType returns the type identifier (for debugging/logging)
	NodeType() string
}

// Metadata keys the planner attaches to nodes
const (
	MetaEstimatedRows = "estimated_rows"
	MetaEstimatedCost = "estimated_cost"
	MetaScanType      = "scan_type"
	MetaTable         = "table"
)

// FullScanNode represents reading every block of a table (leaf node)
type FullScanNode struct {
	TableName string

	metadata map[string]any
}

func (n *FullScanNode) Children() []Node {
	return nil // Leaf node has no children
}

func (n *FullScanNode) Metadata() map[string]any {
	if n.metadata == nil {
		n.metadata = make(map[string]any)
	}
	return n.metadata
}

func (n *FullScanNode) NodeType() string {
	return "FULL SCAN"
}

// IndexScanNode represents a range scan of a secondary index followed
// by table row fetches in key order (leaf node)
type IndexScanNode struct {
	TableName   string
	IndexColumn string

	metadata map[string]any
}

func (n *IndexScanNode) Children() []Node {
	return nil
}

func (n *IndexScanNode) Metadata() map[string]any {
	if n.metadata == nil {
		n.metadata = make(map[string]any)
	}
	return n.metadata
}

func (n *IndexScanNode) NodeType() string {
	return "INDEX RANGE SCAN"
}

// FilterNode applies a predicate to the rows its child produces
type FilterNode struct {
	// Condition is the display form of the predicate
	Condition string

	child    Node
	metadata map[string]any
}

func NewFilterNode(child Node, condition string) *FilterNode {
	return &FilterNode{
		child:     child,
		Condition: condition,
	}
}

func (n *FilterNode) Child() Node {
	return n.child
}

func (n *FilterNode) Children() []Node {
	if n.child == nil {
		return nil
	}
	return []Node{n.child}
}

func (n *FilterNode) Metadata() map[string]any {
	if n.metadata == nil {
		n.metadata = make(map[string]any)
	}
	return n.metadata
}

func (n *FilterNode) NodeType() string {
	return "FILTER"
}
