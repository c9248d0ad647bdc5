package simulation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danl5/govote/pkg/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		draw        float64
		probability float64
		want        model.VoterClass
	}{
		{name: "below probability", draw: 0.2, probability: 0.5, want: model.VoterNormal},
		{name: "equal to probability", draw: 0.5, probability: 0.5, want: model.VoterNormal},
		{name: "above probability", draw: 0.6, probability: 0.5, want: model.VoterSpecial},
		{name: "always normal", draw: 0.999999, probability: 1, want: model.VoterNormal},
		{name: "zero probability", draw: 0.000001, probability: 0, want: model.VoterSpecial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.draw, tt.probability))
		})
	}
}

func TestClassify_Converges(t *testing.T) {
	const samples = 100000
	rnd := rand.New(rand.NewSource(5))
	tolerance := 4 * math.Sqrt(0.25/samples)

	for _, p := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		normal := 0
		for i := 0; i < samples; i++ {
			if classify(rnd.Float64(), p) == model.VoterNormal {
				normal++
			}
		}
		assert.InDelta(t, p, float64(normal)/samples, tolerance, "probability %v", p)
	}
}
