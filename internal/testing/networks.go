package testing

import (
	"testing"

	"github.com/teranos/phi/system"
)

// BasicCM is the 3-node reference network: A feeds C, B feeds A and C, C
// feeds A and B.
var BasicCM = [][]int{
	{0, 0, 1},
	{1, 0, 1},
	{1, 1, 0},
}

// BasicTPM is the state-by-node TPM of the reference network.
var BasicTPM = [][]float64{
	{0, 0, 0},
	{0, 0, 1},
	{1, 0, 1},
	{1, 0, 0},
	{1, 1, 0},
	{1, 1, 1},
	{1, 1, 1},
	{1, 1, 0},
}

// BasicState is the reference network's current state.
var BasicState = []int{1, 0, 0}

// BasicNetwork returns the reference network with nodes labelled A, B, C.
func BasicNetwork(t *testing.T) *system.Network {
	t.Helper()
	return mustNetwork(t, BasicCM, BasicTPM, []string{"A", "B", "C"})
}

// NoisedNetwork has the reference connectivity with a noised TPM, so it is a
// different network context.
func NoisedNetwork(t *testing.T) *system.Network {
	t.Helper()
	tpm := make([][]float64, len(BasicTPM))
	for i, row := range BasicTPM {
		tpm[i] = make([]float64, len(row))
		for j, p := range row {
			tpm[i][j] = 0.9*p + 0.05
		}
	}
	return mustNetwork(t, BasicCM, tpm, []string{"A", "B", "C"})
}

// BasicSubsystem is the whole reference network in BasicState.
func BasicSubsystem(t *testing.T) *system.Subsystem {
	t.Helper()
	return mustSubsystem(t, BasicNetwork(t), BasicState, []int{0, 1, 2})
}

// NoisedSubsystem is the whole noised network in BasicState.
func NoisedSubsystem(t *testing.T) *system.Subsystem {
	t.Helper()
	return mustSubsystem(t, NoisedNetwork(t), BasicState, []int{0, 1, 2})
}

// N0N2Subsystem is nodes A and C of the reference network.
func N0N2Subsystem(t *testing.T) *system.Subsystem {
	t.Helper()
	return mustSubsystem(t, BasicNetwork(t), BasicState, []int{0, 2})
}

// FourNodeRing is a noiseless directed ring 0 -> 1 -> 2 -> 3 -> 0 with
// self-loops, in state (1, 0, 0, 0).
func FourNodeRing(t *testing.T) *system.Subsystem {
	t.Helper()
	cm := [][]int{
		{1, 1, 0, 0},
		{0, 1, 1, 0},
		{0, 0, 1, 1},
		{1, 0, 0, 1},
	}
	net := mustNetwork(t, cm, nil, nil)
	return mustSubsystem(t, net, []int{1, 0, 0, 0}, net.NodeIndices())
}

// TwoNodeLoop is two nodes feeding each other.
func TwoNodeLoop(t *testing.T) *system.Subsystem {
	t.Helper()
	net := mustNetwork(t, [][]int{{0, 1}, {1, 0}}, nil, nil)
	return mustSubsystem(t, net, []int{0, 0}, net.NodeIndices())
}

func mustNetwork(t *testing.T, cm [][]int, tpm [][]float64, labels []string) *system.Network {
	t.Helper()
	net, err := system.NewNetwork(cm, tpm, labels)
	if err != nil {
		t.Fatalf("Failed to build network: %v", err)
	}
	return net
}

func mustSubsystem(t *testing.T, net *system.Network, state, nodes []int) *system.Subsystem {
	t.Helper()
	sub, err := system.NewSubsystem(net, state, nodes)
	if err != nil {
		t.Fatalf("Failed to build subsystem: %v", err)
	}
	return sub
}
