// Package message composes reminder text for a day's workouts.
package message

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Content is the visible part of one reminder notification.
type Content struct {
	Title string
	Body  string
}

// Composer turns the workout names sharing a reminder day into content.
type Composer interface {
	Compose(names []string) Content
}

type variant func(names []string) Content

var singleVariants = []variant{
	func(n []string) Content {
		return Content{Title: fmt.Sprintf("Time for %s", n[0]), Body: fmt.Sprintf("Your %s session is on the schedule today. Keep the streak going.", n[0])}
	},
	func(n []string) Content {
		return Content{Title: fmt.Sprintf("%s day", n[0]), Body: fmt.Sprintf("Today is %s day. A short session still counts.", n[0])}
	},
	func(n []string) Content {
		return Content{Title: fmt.Sprintf("Ready for %s?", n[0]), Body: fmt.Sprintf("Lace up. %s is waiting for you today.", n[0])}
	},
}

var multiVariants = []variant{
	func(n []string) Content {
		return Content{Title: fmt.Sprintf("%d workouts today", len(n)), Body: fmt.Sprintf("On the plan: %s.", JoinNames(n))}
	},
	func(n []string) Content {
		return Content{Title: "Busy training day", Body: fmt.Sprintf("%s are all due today.", JoinNames(n))}
	},
	func(n []string) Content {
		return Content{Title: "Your plan for today", Body: fmt.Sprintf("%s. Pick one and get moving.", JoinNames(n))}
	},
}

// VariantComposer picks a variant deterministically from the names, so the
// same set of workouts always yields the same text.
type VariantComposer struct{}

func NewVariantComposer() *VariantComposer {
	return &VariantComposer{}
}

func (VariantComposer) Compose(names []string) Content {
	switch len(names) {
	case 0:
		return Content{Title: "Workout reminder", Body: "You have a workout planned today."}
	case 1:
		return singleVariants[pick(names, len(singleVariants))](names)
	default:
		return multiVariants[pick(names, len(multiVariants))](names)
	}
}

func pick(names []string, n int) int {
	h := fnv.New32a()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
	}
	return int(h.Sum32() % uint32(n))
}

// JoinNames renders "A", "A and B", or "A, B and C".
func JoinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
