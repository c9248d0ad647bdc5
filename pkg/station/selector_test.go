package station

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danl5/govote/pkg/model"
)

func TestLeastCrowded(t *testing.T) {
	tests := []struct {
		name      string
		occupancy []int
		want      int
	}{
		{
			name:      "single station",
			occupancy: []int{4},
			want:      1,
		},
		{
			name:      "minimum in the middle",
			occupancy: []int{3, 1, 2},
			want:      2,
		},
		{
			name:      "tie goes to the lowest id",
			occupancy: []int{2, 1, 1},
			want:      2,
		},
		{
			name:      "all empty",
			occupancy: []int{0, 0, 0},
			want:      1,
		},
		{
			name:      "minimum last",
			occupancy: []int{5, 5, 0},
			want:      3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stations := NewStations(len(tt.occupancy), candidates)
			ticket := uint64(1)
			for i, n := range tt.occupancy {
				for j := 0; j < n; j++ {
					class := model.VoterNormal
					if j%2 == 1 {
						class = model.VoterSpecial
					}
					stations[i].Enqueue(model.Voter{Ticket: ticket, Class: class})
					ticket++
				}
			}

			got := LeastCrowded(stations)
			assert.Equal(t, tt.want, got.ID())
		})
	}
}

func TestLeastCrowded_NoStations(t *testing.T) {
	assert.Nil(t, LeastCrowded(nil))
}

func TestLeastCrowded_ServersKeepingUp(t *testing.T) {
	stations := NewStations(3, candidates)
	for ticket := uint64(1); ticket <= 20; ticket++ {
		st := LeastCrowded(stations)
		st.Enqueue(model.Voter{Ticket: ticket, Class: model.VoterNormal})
		// served before the next arrival
		st.Do(func(b *Booth) { b.PopNormal() })
	}

	assert.Len(t, stations[0].Result().Served, 20)
	assert.Empty(t, stations[1].Result().Served)
	assert.Empty(t, stations[2].Result().Served)
}
