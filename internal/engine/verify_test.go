package engine

import (
	"testing"

	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func craftedResult(placements ...model.Placement) model.PackResult {
	outcomes := make([]model.Outcome, len(placements))
	for i := range placements {
		outcomes[i] = model.Outcome{Index: i, Status: model.StatusPlaced}
	}
	return model.PackResult{
		Container:  model.Dims(10, 10, 10),
		Settings:   model.DefaultSettings(),
		Containers: []model.ContainerResult{{Dimensions: model.Dims(10, 10, 10), Placements: placements}},
		Outcomes:   outcomes,
	}
}

func placed(label string, pos model.Position, d model.Dimensions) model.Placement {
	return model.Placement{
		Item:     model.Item{Label: label, Dimensions: d, Quantity: 1},
		Position: pos,
		Placed:   d,
	}
}

func TestVerify_ValidResult(t *testing.T) {
	r := craftedResult(
		placed("A", model.Position{}, model.Dims(5, 5, 5)),
		placed("B", model.Position{X: 5}, model.Dims(5, 5, 5)),
	)
	assert.Nil(t, Verify(r))
}

func TestVerify_DetectsOverlap(t *testing.T) {
	r := craftedResult(
		placed("A", model.Position{}, model.Dims(5, 5, 5)),
		placed("B", model.Position{X: 4}, model.Dims(5, 5, 5)),
	)
	v := Verify(r)
	require.Len(t, v, 1)
	assert.Equal(t, ViolationOverlap, v[0].Kind)
	assert.Equal(t, 0, v[0].A)
	assert.Equal(t, 1, v[0].B)
}

func TestVerify_DetectsOutOfBounds(t *testing.T) {
	r := craftedResult(placed("A", model.Position{X: 8}, model.Dims(5, 1, 1)))
	v := Verify(r)
	require.Len(t, v, 1)
	assert.Equal(t, ViolationOutOfBounds, v[0].Kind)
}

func TestVerify_DetectsRotationMismatch(t *testing.T) {
	p := placed("A", model.Position{}, model.Dims(1, 2, 3))
	p.Orientation = model.OrientDHW
	v := Verify(craftedResult(p))
	require.Len(t, v, 1)
	assert.Equal(t, ViolationRotation, v[0].Kind)
}

func TestVerify_DetectsCountMismatch(t *testing.T) {
	r := craftedResult(placed("A", model.Position{}, model.Dims(1, 1, 1)))
	r.Outcomes = append(r.Outcomes, model.Outcome{Index: 1, Status: model.StatusPlaced})
	v := Verify(r)
	require.Len(t, v, 1)
	assert.Equal(t, ViolationCount, v[0].Kind)
}

func TestFormatViolations(t *testing.T) {
	msgs := FormatViolations([]Violation{
		{Kind: ViolationOverlap, ContainerIndex: 0, A: 0, B: 1, Detail: "x"},
		{Kind: ViolationCount, ContainerIndex: -1, Detail: "y"},
	})
	assert.Equal(t, []string{"Container 1: overlap: x", "count: y"}, msgs)
}
