package main

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
)

// A block needs this much of its own width covered by the current group's
// span before it is considered part of the same spine.
const MIN_GROUP_OVERLAP = 0.3

// Structured-layout OCR engines return an array of these, one per detected
// text block, with a four-vertex bounding polygon.
type BlockAnnotation struct {
	Text         string       `json:"text"`
	BoundingPoly BoundingPoly `json:"boundingBox"`
}

type BoundingPoly struct {
	Vertices []Vertices `json:"vertices"`
}

type Vertices struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TextBlock is one recognized fragment reduced to its horizontal extent,
// which is all the grouping needs.
type TextBlock struct {
	Text    string
	XCenter float64
	XMin    float64
	XMax    float64
}

// SpineGroup is an ordered cluster of blocks judged to belong to one
// physical spine.  Its extent is the union of its members' extents.
type SpineGroup struct {
	Blocks []TextBlock
	XMin   float64
	XMax   float64
}

func GetBlocks(str string) ([]TextBlock, error) {
	var annotations []BlockAnnotation

	if err := json.Unmarshal([]byte(str), &annotations); err != nil {
		return nil, err
	}

	return BlocksFromAnnotations(annotations), nil
}

func BlocksFromAnnotations(annotations []BlockAnnotation) []TextBlock {
	blocks := []TextBlock{}

	for _, a := range annotations {
		v := a.BoundingPoly.Vertices

		if len(v) < 4 {
			sugar.Debugf("Skip block with %d vertices", len(v))
			continue
		}

		text := strings.TrimSpace(a.Text)

		if len(text) == 0 {
			continue
		}

		blocks = append(blocks, TextBlock{
			Text:    text,
			XCenter: (v[0].X + v[1].X) / 2,
			XMin:    math.Min(v[0].X, v[3].X),
			XMax:    math.Max(v[1].X, v[2].X),
		})
	}

	return blocks
}

// GroupBlocks clusters blocks into spines, left to right.  We compare each
// block against the accumulated span of the whole group rather than just the
// previous block, so a wide publisher imprint still joins the spine whose
// title block it straddles even if it doesn't touch the most recent member.
func GroupBlocks(blocks []TextBlock) []SpineGroup {
	if len(blocks) == 0 {
		return nil
	}

	sorted := make([]TextBlock, len(blocks))
	copy(sorted, blocks)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].XCenter < sorted[j].XCenter
	})

	groups := []SpineGroup{}
	current := SpineGroup{
		Blocks: []TextBlock{sorted[0]},
		XMin:   sorted[0].XMin,
		XMax:   sorted[0].XMax,
	}

	for _, block := range sorted[1:] {
		overlap := math.Max(0, math.Min(current.XMax, block.XMax)-math.Max(current.XMin, block.XMin))
		width := block.XMax - block.XMin

		// A degenerate block (no width) can never reach the threshold and
		// always starts its own group.
		if width > 0 && overlap/width > MIN_GROUP_OVERLAP {
			current.Blocks = append(current.Blocks, block)
			current.XMin = math.Min(current.XMin, block.XMin)
			current.XMax = math.Max(current.XMax, block.XMax)
		} else {
			sugar.Debugf("Close group at %v-%v, %d blocks", current.XMin, current.XMax, len(current.Blocks))
			groups = append(groups, current)
			current = SpineGroup{
				Blocks: []TextBlock{block},
				XMin:   block.XMin,
				XMax:   block.XMax,
			}
		}
	}

	return append(groups, current)
}

// Text returns the group's member texts, newline-joined.
func (g SpineGroup) Text() string {
	texts := make([]string, len(g.Blocks))

	for i, b := range g.Blocks {
		texts[i] = b.Text
	}

	return strings.Join(texts, "\n")
}

// JoinGroups encodes groups as marker-separated text.  Typed groups are the
// primary hand-off to the segmenter; this encoding exists only for the
// boundary with OCR providers that already speak the marker convention.
func JoinGroups(groups []SpineGroup) string {
	texts := make([]string, len(groups))

	for i, g := range groups {
		texts[i] = g.Text()
	}

	return strings.Join(texts, SPINE_SEPARATOR)
}
