package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelhire/hiring-agent/internal/types"
)

func TestNew_RejectsDuplicateNodes(t *testing.T) {
	_, err := New([]Node{{Name: "a"}, {Name: "a"}})
	assert.Error(t, err)
}

func TestNew_RejectsUnknownDependency(t *testing.T) {
	_, err := New([]Node{{Name: "a", DependsOn: []string{"ghost"}}})
	assert.Error(t, err)
}

func TestNew_RejectsForwardDependency(t *testing.T) {
	// Depending on a later node would permit cycles; declaration order is the
	// topological order.
	_, err := New([]Node{{Name: "a", DependsOn: []string{"b"}}, {Name: "b"}})
	assert.Error(t, err)
}

func TestNew_RejectsEmptyName(t *testing.T) {
	_, err := New([]Node{{Name: ""}})
	assert.Error(t, err)
}

func TestReady(t *testing.T) {
	g, err := New([]Node{
		{Name: "a"},
		{Name: "b"},
		{Name: "c", DependsOn: []string{"a", "b"}},
	})
	require.NoError(t, err)

	assert.True(t, g.Ready("a", nil))
	assert.False(t, g.Ready("c", map[string]bool{"a": true}))
	assert.True(t, g.Ready("c", map[string]bool{"a": true, "b": true}))
	assert.False(t, g.Ready("ghost", nil))
}

func TestHiring_Shape(t *testing.T) {
	g := Hiring()

	assert.Equal(t, 7, g.Len())
	for _, source := range types.AnalystSources {
		require.True(t, g.Contains(source))
		assert.Empty(t, g.DependenciesOf(source), "%s is Layer 1 and depends only on the input", source)
	}

	assert.ElementsMatch(t, types.AnalystSources, g.DependenciesOf(types.TaskFairnessAudit))

	verdictDeps := g.DependenciesOf(types.TaskFinalVerdict)
	assert.Len(t, verdictDeps, 6)
	assert.Contains(t, verdictDeps, types.TaskFairnessAudit)
}

func TestHiring_Readiness(t *testing.T) {
	g := Hiring()

	fourDone := map[string]bool{
		types.SourceResume: true, types.SourceCoverLetter: true,
		types.SourceJDMatch: true, types.SourceGitHub: true,
	}
	assert.False(t, g.Ready(types.TaskFairnessAudit, fourDone),
		"audit must wait for all five analysts")

	allAnalysts := map[string]bool{}
	for _, s := range types.AnalystSources {
		allAnalysts[s] = true
	}
	assert.True(t, g.Ready(types.TaskFairnessAudit, allAnalysts))
	assert.False(t, g.Ready(types.TaskFinalVerdict, allAnalysts),
		"verdict must wait for the audit")

	allAnalysts[types.TaskFairnessAudit] = true
	assert.True(t, g.Ready(types.TaskFinalVerdict, allAnalysts))
}
