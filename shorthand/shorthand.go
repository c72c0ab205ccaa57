// Package shorthand decodes the positional museum shorthand notation
// `TL-TaL-HFL-EL[:WT[unit]]` into up to five labelled measurements
// (spec §4.4's shorthand_length helper, §6's shorthand format, §8 scenario
// 3), plus its `(sep)[a-z]{1,4}<value>` extension slots (e.g. `fa22`).
package shorthand

import (
	"strconv"
	"strings"

	"github.com/fieldtraits/traitstack/units"
)

// Slot names a shorthand position (spec §4.4: shorthand_tl,
// shorthand_tal, shorthand_hfl, shorthand_el, shorthand_wt).
type Slot string

const (
	SlotTotalLength  Slot = "shorthand_tl"
	SlotTailLength   Slot = "shorthand_tal"
	SlotHindFoot     Slot = "shorthand_hfl"
	SlotEarLength    Slot = "shorthand_el"
	SlotBodyMass     Slot = "shorthand_wt"
)

// orderedSlots is the fixed positional order of the four length slots,
// before the optional ":WT[unit]" weight suffix.
var orderedSlots = []Slot{SlotTotalLength, SlotTailLength, SlotHindFoot, SlotEarLength}

// Measurement is one decoded shorthand slot.
type Measurement struct {
	Slot          Slot
	Value         float64
	Unknown       bool // slot held "?" / "x" / "n/d"
	Estimated     bool // slot was bracketed as "[value]"
	Units         string
	UnitsInferred bool
}

// Extension is one decoded `(sep)[a-z]{1,4}<value>` trailing slot, e.g.
// "fa22" decodes to Label="fa", Value=22.
type Extension struct {
	Label string
	Value float64
}

// Result is everything decoded out of one shorthand occurrence.
type Result struct {
	Measurements []Measurement
	Extensions   []Extension
}

// separators are the three characters spec §6 allows between slots.
const separators = ":/-"

// unknownTokens mark a slot as present-but-unrecorded rather than absent.
var unknownTokens = map[string]bool{"?": true, "x": true, "n/d": true, "n": true, "d": true}

// ndMarker rewrites the "n/d" unknown marker to "?" so its '/' is not read
// as a slot separator.
var ndMarker = strings.NewReplacer("n/d", "?", "N/D", "?", "n/D", "?", "N/d", "?")

// Decode parses a full shorthand occurrence (e.g. "123-45-20-18:9.2g" or
// "192-84-31-19=38g"). Any of `:`, `/`, `-`, or `=` is accepted between
// the length run and the weight slot, the same set the scanner's
// shorthand_block fragment allows there; the matched text is passed in
// unchanged.
func Decode(s string) Result {
	s = strings.TrimSpace(s)
	s = ndMarker.Replace(s)
	lengthPart, weightPart, ext := splitWeightAndExtensions(s)

	var res Result
	slots := splitSlots(lengthPart)
	for i, raw := range slots {
		if i >= len(orderedSlots) {
			break
		}
		m, ok := decodeSlot(orderedSlots[i], raw)
		if ok {
			res.Measurements = append(res.Measurements, m)
		}
	}
	if weightPart != "" {
		if m, ok := decodeWeightSlot(weightPart); ok {
			res.Measurements = append(res.Measurements, m)
		}
	}
	res.Extensions = ext
	return res
}

// splitSlots breaks the positional length run on any of the accepted
// separators, without disturbing bracketed estimate markers.
func splitSlots(s string) []string {
	var slots []string
	var cur strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '[':
			depth++
			cur.WriteRune(r)
		case r == ']':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case depth == 0 && strings.ContainsRune(separators, r):
			slots = append(slots, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	slots = append(slots, cur.String())
	return slots
}

// splitWeightAndExtensions separates the leading TL-TaL-HFL-EL run from an
// optional trailing ":WT[unit]" weight slot and any further
// "(sep)[a-z]{1,4}<value>" extension slots appended after it.
func splitWeightAndExtensions(s string) (lengthPart, weightPart string, ext []Extension) {
	// Find the 4th separator boundary: scan slots until we've consumed four
	// length values, then everything after the next separator is the
	// weight+extensions tail.
	idx := 0
	depth := 0
	seps := 0
	for i, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0 && strings.ContainsRune(separators+"=", r):
			seps++
			if seps == 4 {
				idx = i
				goto found
			}
		}
	}
	// Fewer than four separators: the whole string is the length run.
	return s, "", nil
found:
	lengthPart = s[:idx]
	tail := s[idx+1:]
	weightPart, ext = splitExtensions(tail)
	return lengthPart, weightPart, ext
}

// splitExtensions peels any "(sep)[a-z]{1,4}<value>" suffixes off tail,
// returning the remaining weight token and the decoded extensions in the
// order they appeared.
func splitExtensions(tail string) (weightPart string, ext []Extension) {
	// An extension slot starts at a separator followed by 1-4 letters then
	// digits. Scan left to right collecting them; everything before the
	// first such boundary is the weight token.
	runes := []rune(tail)
	n := len(runes)
	cut := n
	i := 0
	for i < n {
		if !strings.ContainsRune(separators, runes[i]) {
			i++
			continue
		}
		j := i + 1
		labelStart := j
		for j < n && j-labelStart < 4 && isAlpha(runes[j]) {
			j++
		}
		if j == labelStart {
			i++
			continue
		}
		valStart := j
		for j < n && (isDigitOrDot(runes[j])) {
			j++
		}
		if j == valStart {
			i++
			continue
		}
		if cut == n {
			cut = i
		}
		label := string(runes[labelStart:valStart])
		valStr := string(runes[valStart:j])
		if v, err := strconv.ParseFloat(valStr, 64); err == nil {
			ext = append(ext, Extension{Label: label, Value: v})
		}
		i = j
	}
	weightPart = string(runes[:cut])
	return weightPart, ext
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigitOrDot(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

// decodeSlot decodes one of the four fixed-position length slots.
func decodeSlot(slot Slot, raw string) (Measurement, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Measurement{}, false
	}
	estimated := false
	trimmed := raw
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		estimated = true
		trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]")
	}
	if unknownTokens[strings.ToLower(trimmed)] {
		return Measurement{Slot: slot, Unknown: true, Estimated: estimated}, true
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return Measurement{}, false
	}
	return Measurement{
		Slot:          slot,
		Value:         v,
		Estimated:     estimated,
		Units:         units.LengthShorthandUnit,
		UnitsInferred: true,
	}, true
}

// decodeWeightSlot decodes the optional trailing "WT[unit]" slot; the unit
// suffix, when present, is one or more trailing letters (e.g. "9.2g").
func decodeWeightSlot(raw string) (Measurement, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Measurement{}, false
	}
	estimated := false
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		estimated = true
		raw = strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	}
	if unknownTokens[strings.ToLower(raw)] {
		return Measurement{Slot: SlotBodyMass, Unknown: true, Estimated: estimated}, true
	}
	i := len(raw)
	for i > 0 && isAlpha(rune(raw[i-1])) {
		i--
	}
	numPart, unitPart := raw[:i], raw[i:]
	v, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return Measurement{}, false
	}
	m := Measurement{Slot: SlotBodyMass, Value: v, Estimated: estimated}
	if unitPart == "" {
		m.Units = units.MassShorthandUnit
		m.UnitsInferred = true
	} else if _, ok := units.Lookup(units.Mass, unitPart); ok {
		m.Units = strings.ToLower(unitPart)
	} else {
		m.Units = units.MassShorthandUnit
		m.UnitsInferred = true
	}
	return m, true
}
