package ui

// relocationBatchSize bounds the fixup records kept during one collection
// scan. A full batch is applied mid-scan and the scan continues; the batch
// records stay valid because every relocation source index (the arena
// length at removal time) is strictly greater than every destination, so
// sources and destinations never collide within a batch.
const relocationBatchSize = 64

type relocation struct {
	src, dst int32
}

// collectGarbage removes every control whose lastFrame stamp is not the
// current frame. Removal is swap-remove: the arena's last node moves into
// the freed slot, and all links referencing the moved node are rewritten.
// The root carries the current stamp by construction and is never
// removed.
func (ui *Ui) collectGarbage() {
	var batch [relocationBatchSize]relocation
	n := 0

	flush := func() {
		if n == 0 {
			return
		}
		for i := range ui.tree {
			node := &ui.tree[i]
			for _, r := range batch[:n] {
				if node.parent == r.src {
					node.parent = r.dst
				}
				if node.child == r.src {
					node.child = r.dst
				}
				if node.sibling == r.src {
					node.sibling = r.dst
				}
			}
		}
		for _, r := range batch[:n] {
			if ui.activeCtrl == r.src {
				ui.activeCtrl = r.dst
			}
		}
		n = 0
	}

	for idx := 0; idx < len(ui.tree); idx++ {
		if ui.tree[idx].lastFrame == ui.currentFrame {
			continue
		}

		// The swapped-in node may be dead too; keep removing in place
		// until the slot holds a live node or the arena ends.
		for idx < len(ui.tree) && ui.tree[idx].lastFrame != ui.currentFrame {
			last := len(ui.tree) - 1
			ui.tree[idx] = ui.tree[last]
			ui.tree = ui.tree[:last]
		}

		if idx < len(ui.tree) {
			if n == relocationBatchSize {
				flush()
			}
			batch[n] = relocation{src: int32(len(ui.tree)), dst: int32(idx)}
			n++
		}
	}

	flush()
}
