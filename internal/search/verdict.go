package search

import "fmt"

type Verdict uint8

const (
	Bad Verdict = iota
	Good
)

func (that Verdict) String() string {
	if that == Good {
		return "good"
	}

	return "bad"
}

func ParseVerdict(value string) (Verdict, error) {
	switch value {
	case "good":
		return Good, nil
	case "bad":
		return Bad, nil
	default:
		return Bad, fmt.Errorf("unknown verdict %q", value)
	}
}
