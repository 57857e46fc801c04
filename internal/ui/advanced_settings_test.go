package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/PipeLoad/internal/model"
)

func TestCapacityText(t *testing.T) {
	s := model.DefaultSettings()
	s.MinSpace = 0
	s.GridFastPath = true
	c := model.NewContainer("Box", 100, 100, 600, 0)

	assert.Equal(t, "9 x Ø30.0 cm per cross-section of Box", capacityText(s, c, 30))
	assert.Equal(t, "Ø120.0 cm does not fit in Box", capacityText(s, c, 120))
}
