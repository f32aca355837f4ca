// Package graph defines the static task dependency graph for an evaluation
// run: which tasks exist and which results each one needs before it can
// start. The hiring graph is fixed at compile time; the explicit node/edge
// form exists so the scheduler can be driven by stub graphs in tests.
package graph

import "fmt"

// Node is one task in the graph.
type Node struct {
	Name      string
	DependsOn []string
}

// Graph is a DAG of named tasks. Construct with New to get edge validation.
type Graph struct {
	nodes []Node
	index map[string]Node
}

// New builds a graph from nodes, rejecting duplicate names and edges that
// point at unknown tasks. Cycle detection is intentionally simple: a node may
// only depend on nodes declared before it, which is sufficient for layered
// graphs and keeps ordering explicit.
func New(nodes []Node) (*Graph, error) {
	index := make(map[string]Node, len(nodes))
	for _, node := range nodes {
		if node.Name == "" {
			return nil, fmt.Errorf("graph node with empty name")
		}
		if _, exists := index[node.Name]; exists {
			return nil, fmt.Errorf("duplicate graph node %q", node.Name)
		}
		for _, dep := range node.DependsOn {
			if _, known := index[dep]; !known {
				return nil, fmt.Errorf("node %q depends on %q, which is not declared before it", node.Name, dep)
			}
		}
		index[node.Name] = node
	}
	return &Graph{nodes: nodes, index: index}, nil
}

// MustNew builds a graph and panics on error. Use for compile-time-fixed
// graphs whose validity is covered by tests.
func MustNew(nodes []Node) *Graph {
	g, err := New(nodes)
	if err != nil {
		panic(fmt.Sprintf("invalid task graph: %v", err))
	}
	return g
}

// Nodes returns all nodes in declaration order.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// DependenciesOf returns the dependency set of a task.
func (g *Graph) DependenciesOf(name string) []string {
	return g.index[name].DependsOn
}

// Contains reports whether the graph declares a task.
func (g *Graph) Contains(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Ready reports whether a task can start given the set of completed tasks.
func (g *Graph) Ready(name string, completed map[string]bool) bool {
	node, ok := g.index[name]
	if !ok {
		return false
	}
	for _, dep := range node.DependsOn {
		if !completed[dep] {
			return false
		}
	}
	return true
}
