package printer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joshuapare/heapkit/heap"
)

// jsonBlock represents one block in JSON output.
type jsonBlock struct {
	Offset   int    `json:"offset"`
	State    string `json:"state"`
	Size     int    `json:"size"`
	PrevSize int    `json:"prev_size"`
}

// jsonFreeBlock adds the free-list neighbor offsets, -1 when absent.
type jsonFreeBlock struct {
	jsonBlock
	Next int `json:"next"`
	Prev int `json:"prev"`
}

func (p *Printer) printBlocksJSON() error {
	blocks := []jsonBlock{}
	p.heap.Walk(func(b heap.Block) bool {
		if b.State == heap.Fencepost && !p.opts.ShowFenceposts {
			return true
		}
		if p.opts.MaxBlocks > 0 && len(blocks) >= p.opts.MaxBlocks {
			return false
		}
		blocks = append(blocks, toJSONBlock(b))
		return true
	})
	return p.writeJSON(blocks)
}

func (p *Printer) printFreeListJSON() error {
	blocks := []jsonFreeBlock{}
	p.heap.WalkFree(func(fb heap.FreeBlock) bool {
		blocks = append(blocks, jsonFreeBlock{
			jsonBlock: toJSONBlock(fb.Block),
			Next:      fb.Next,
			Prev:      fb.Prev,
		})
		return true
	})
	return p.writeJSON(blocks)
}

func (p *Printer) printStatsJSON() error {
	return p.writeJSON(p.heap.Stats())
}

func (p *Printer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

func toJSONBlock(b heap.Block) jsonBlock {
	return jsonBlock{
		Offset:   b.Off,
		State:    strings.ToLower(b.State.String()),
		Size:     b.Size,
		PrevSize: b.PrevSize,
	}
}
