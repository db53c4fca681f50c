package mir

// SimplifyCFG performs control flow graph simplification on a function.
// Transformations:
// 1. Remove trivial goto blocks (0 instructions + goto terminator)
// 2. Collapse goto chains
// 3. Remove unreachable blocks
// 4. Renumber blocks deterministically
func SimplifyCFG(f *Func) {
	if f == nil || len(f.Blocks) == 0 {
		return
	}

	redirects := buildRedirectMap(f)
	applyRedirects(f, redirects)
	reachable := computeReachability(f)
	compactBlocks(f, reachable)
}

// buildRedirectMap maps every trivial goto block to its final target,
// following chains. Cycles of empty blocks stop at the first repeat.
func buildRedirectMap(f *Func) map[BlockID]BlockID {
	redirects := make(map[BlockID]BlockID)

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		if !isTrivialGotoBlock(f, bb.ID) {
			continue
		}
		target := bb.Term.Goto.Target
		visited := map[BlockID]bool{bb.ID: true}
		for !visited[target] {
			visited[target] = true
			if next, ok := redirects[target]; ok {
				target = next
				continue
			}
			if isTrivialGotoBlock(f, target) {
				target = f.Blocks[target].Term.Goto.Target
				continue
			}
			break
		}
		if target != bb.ID {
			redirects[bb.ID] = target
		}
	}
	return redirects
}

func isTrivialGotoBlock(f *Func, id BlockID) bool {
	bb := f.Block(id)
	return bb != nil && len(bb.Instrs) == 0 && bb.Term.Kind == TermGoto
}

func applyRedirects(f *Func, redirects map[BlockID]BlockID) {
	if len(redirects) == 0 {
		return
	}
	redirect := func(id BlockID) BlockID {
		if newID, ok := redirects[id]; ok {
			return newID
		}
		return id
	}
	for i := range f.Blocks {
		retarget(&f.Blocks[i].Term, redirect)
	}
	f.Entry = redirect(f.Entry)
}

func retarget(term *Terminator, fn func(BlockID) BlockID) {
	switch term.Kind {
	case TermGoto:
		term.Goto.Target = fn(term.Goto.Target)
	case TermIf:
		term.If.Then = fn(term.If.Then)
		term.If.Else = fn(term.If.Else)
	}
}

// computeReachability marks blocks reachable from the entry.
func computeReachability(f *Func) []bool {
	reachable := make([]bool, len(f.Blocks))
	stack := []BlockID{f.Entry}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id < 0 || int(id) >= len(f.Blocks) || reachable[id] {
			continue
		}
		reachable[id] = true
		stack = append(stack, f.Blocks[id].Term.Successors()...)
	}
	return reachable
}

// compactBlocks removes unreachable blocks and renumbers the remaining ones
// in their original order.
func compactBlocks(f *Func, reachable []bool) {
	count := 0
	for _, r := range reachable {
		if r {
			count++
		}
	}

	if count == len(f.Blocks) {
		for i := range f.Blocks {
			f.Blocks[i].ID = BlockID(i) //nolint:gosec // G115: bounded by existing block count
		}
		return
	}

	oldToNew := make(map[BlockID]BlockID, count)
	newBlocks := make([]Block, 0, count)
	for i, keep := range reachable {
		if keep {
			//nolint:gosec // G115: bounded by existing block count
			oldToNew[BlockID(i)] = BlockID(len(newBlocks))
			newBlocks = append(newBlocks, f.Blocks[i])
		}
	}

	remap := func(id BlockID) BlockID {
		if newID, ok := oldToNew[id]; ok {
			return newID
		}
		return id
	}
	for i := range newBlocks {
		newBlocks[i].ID = BlockID(i) //nolint:gosec // G115: bounded by newBlocks length
		retarget(&newBlocks[i].Term, remap)
	}

	f.Blocks = newBlocks
	f.Entry = remap(f.Entry)
}
