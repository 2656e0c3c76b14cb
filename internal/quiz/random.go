package quiz

import (
	"crypto/rand"
	"log"
	"math/big"

	"github.com/samber/lo"
)

// RandRange returns a uniformly random integer in [low, high]. If high < low it returns low.
func RandRange(low, high int) int {
	if high <= low {
		return low
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(high-low+1)))
	if err != nil {
		log.Printf("[WARN] Error generating random number: %v, using fallback", err)
		return low
	}
	return low + int(n.Int64())
}

// PickRandom selects a uniformly random record of list satisfying pred and
// returns it with its index in list. ok is false when nothing is eligible.
func PickRandom(pred func(TitleRecord) bool, list []TitleRecord) (record TitleRecord, index int, ok bool) {
	eligible := lo.Filter(lo.Range(len(list)), func(i int, _ int) bool {
		return pred(list[i])
	})
	if len(eligible) == 0 {
		return TitleRecord{}, -1, false
	}
	index = eligible[RandRange(0, len(eligible)-1)]
	return list[index], index, true
}
