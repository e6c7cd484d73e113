package connectivity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	phitest "github.com/teranos/phi/internal/testing"
	"github.com/teranos/phi/models"
	"github.com/teranos/phi/system"
)

// pastCut severs 1->1, 1->2, 0->0 and 2->0; only 1->2 and 2->0 exist in the
// reference network.
var pastCut = models.NewCut(models.Past, models.MustPartition(
	models.NewPart([]int{0}, []int{1}),
	models.NewPart([]int{1, 2}, []int{0, 2}),
))

func TestSevered(t *testing.T) {
	sub := phitest.BasicSubsystem(t)

	n, err := Severed(sub)
	require.NoError(t, err)
	assert.Zero(t, n, "null cut severs nothing")

	n, err = Severed(sub.WithCut(pastCut))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestIntegration(t *testing.T) {
	sub := phitest.BasicSubsystem(t)
	ev := New()
	assert.Equal(t, Name, ev.Name())

	for _, direction := range models.Directions() {
		t.Run(direction.String(), func(t *testing.T) {
			phi, err := ev.Integration(context.Background(), system.NewConceptStyleSystem(sub, direction, pastCut))
			require.NoError(t, err)
			assert.Equal(t, 2.0, phi)

			phi, err = ev.Integration(context.Background(), system.NewConceptStyleSystem(sub, direction, sub.NullCut()))
			require.NoError(t, err)
			assert.Zero(t, phi)
		})
	}
}

func TestIntegration_Cancelled(t *testing.T) {
	sub := phitest.BasicSubsystem(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Integration(ctx, system.NewConceptStyleSystem(sub, models.Past, pastCut))
	assert.ErrorIs(t, err, context.Canceled)
}
