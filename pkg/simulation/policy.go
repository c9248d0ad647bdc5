package simulation

import (
	"github.com/danl5/govote/pkg/common"
	"github.com/danl5/govote/pkg/model"
	"github.com/danl5/govote/pkg/station"
)

// specialPriorityLimit is the normal queue length below which waiting special
// voters are always served first
const specialPriorityLimit = 5

// pickQueue chooses the queue the next voter is popped from. It must be called
// under the station guard with at least one voter waiting.
//
// When both queues are busy, the queue whose front ticket is greater, the more
// recent arrival, is served first.
func pickQueue(b *station.Booth) (model.VoterClass, common.PickReason) {
	normal, special := b.NormalCount(), b.SpecialCount()

	switch {
	case special > 0 && normal == 0:
		return model.VoterSpecial, common.PickSpecialOnly
	case special > 0 && normal < specialPriorityLimit:
		return model.VoterSpecial, common.PickSpecialPriority
	case special == 0:
		return model.VoterNormal, common.PickNormalOnly
	}

	normalFront, _ := b.FrontNormal()
	specialFront, _ := b.FrontSpecial()
	if specialFront > normalFront {
		return model.VoterSpecial, common.PickNewerFront
	}
	return model.VoterNormal, common.PickNewerFront
}

// popNext pops the next voter according to pickQueue.
func popNext(st *station.Station) (v model.Voter, reason common.PickReason) {
	st.Do(func(b *station.Booth) {
		v.Class, reason = pickQueue(b)
		v.Ticket = b.Pop(v.Class)
	})
	return
}
