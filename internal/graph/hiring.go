package graph

import "github.com/panelhire/hiring-agent/internal/types"

// Hiring returns the fixed three-layer evaluation graph:
//
//	Layer 1 (parallel): resume, cover_letter, jd_match, github, location
//	Layer 2: fairness_audit, after all five analysts
//	Layer 3: final_verdict, after the audit and all five analysts
func Hiring() *Graph {
	analysts := append([]string{}, types.AnalystSources...)

	nodes := make([]Node, 0, len(analysts)+2)
	for _, name := range analysts {
		nodes = append(nodes, Node{Name: name})
	}
	nodes = append(nodes, Node{
		Name:      types.TaskFairnessAudit,
		DependsOn: analysts,
	})
	nodes = append(nodes, Node{
		Name:      types.TaskFinalVerdict,
		DependsOn: append(append([]string{}, analysts...), types.TaskFairnessAudit),
	})

	return MustNew(nodes)
}
