package drafts

import (
	"sort"
	"time"

	"github.com/KirkDiggler/chargen/internal/domain/draft"
)

// UTCClock is the production TimeProvider
type UTCClock struct{}

// Now returns the current UTC time
func (UTCClock) Now() time.Time {
	return time.Now().UTC()
}

func sortByCreated(list []*draft.Draft) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
