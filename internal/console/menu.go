package console

import (
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/cockroachdb/errors"

	"FishingDay/internal/game"
	"FishingDay/internal/model"
)

var (
	errNotANumber  = errors.New("not a number")
	errOutOfRange  = errors.New("choice out of range")
	errBadOrder    = errors.New("expected '<bait number> <quantity>'")
	errUnknownWord = errors.New("unrecognized input")
)

const endDay = 4

var equipmentWords = map[string]int{
	"small":  int(game.ChooseSmall),
	"medium": int(game.ChooseMedium),
	"big":    int(game.ChooseBig),
	"auto":   int(game.ChooseAuto),
	"skip":   int(game.ChooseSkip),
	"quit":   int(game.ChooseQuit),
	"exit":   int(game.ChooseQuit),
}

// exactWords quit the game, so a typo must never reach them.
var exactWords = map[string]bool{
	"quit": true,
	"exit": true,
}

var baitWords = map[string]int{
	"red":   1,
	"blue":  2,
	"green": 3,
	"end":   endDay,
	"stop":  endDay,
}

// parseChoice accepts a number in [1,hi] or a word from words, allowing small typos.
func parseChoice(line string, hi int, words map[string]int) (int, error) {
	token := strings.ToLower(strings.TrimSpace(line))
	if token == "" {
		return 0, errNotANumber
	}
	if n, err := strconv.Atoi(token); err == nil {
		if n < 1 || n > hi {
			return 0, errors.Wrapf(errOutOfRange, "%d", n)
		}
		return n, nil
	}
	if n, ok := matchWord(token, words); ok {
		return n, nil
	}
	return 0, errors.Wrapf(errUnknownWord, "%q", token)
}

// matchWord finds the closest word within the typo limit. Ties between different
// values count as no match. Words in exactWords never match fuzzily.
func matchWord(token string, words map[string]int) (int, bool) {
	if n, ok := words[token]; ok {
		return n, true
	}
	bestDist, bestVal, ambiguous := -1, 0, false
	for w, v := range words {
		if exactWords[w] {
			continue
		}
		dist := levenshtein.ComputeDistance(token, w)
		if dist > typoLimit(len(w)) {
			continue
		}
		switch {
		case bestDist < 0 || dist < bestDist:
			bestDist, bestVal, ambiguous = dist, v, false
		case dist == bestDist && v != bestVal:
			ambiguous = true
		}
	}
	if bestDist < 0 || ambiguous {
		return 0, false
	}
	return bestVal, true
}

func typoLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func parseEquipment(line string) (game.Choice, error) {
	n, err := parseChoice(line, int(game.ChooseQuit), equipmentWords)
	if err != nil {
		return 0, err
	}
	return game.Choice(n), nil
}

// parseOrder reads "<bait number> <quantity>". The bait may also be named.
func parseOrder(line string) (game.Order, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return game.Order{}, errBadOrder
	}
	qty, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Order{}, errBadOrder
	}
	idx, err := parseChoice(fields[0], len(model.Colors), baitWords)
	if err != nil {
		if errors.Is(err, errOutOfRange) {
			return game.Order{}, err
		}
		return game.Order{}, errBadOrder
	}
	if idx == endDay {
		return game.Order{}, errBadOrder
	}
	return game.Order{Color: model.Colors[idx-1], Quantity: qty}, nil
}

// parseBait returns the chosen color, or ok=false for "end the day".
func parseBait(line string) (model.Color, bool, error) {
	n, err := parseChoice(line, endDay, baitWords)
	if err != nil {
		return 0, false, err
	}
	if n == endDay {
		return 0, false, nil
	}
	return model.Colors[n-1], true, nil
}
