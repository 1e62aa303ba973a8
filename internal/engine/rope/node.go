package rope

import "strings"

// Tree structure constants.
const (
	// MaxChildren is the maximum children per internal node.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// node is a node in the rope B+ tree. Leaf nodes (height 0) hold text
// chunks; internal nodes hold child references. All offsets at this
// level are char offsets.
type node struct {
	height uint8
	sum    Summary

	// Internal node fields (height > 0).
	children  []*node
	childSums []Summary

	// Leaf node fields (height == 0).
	chunks []chunk
}

func newLeaf() *node {
	return &node{height: 0}
}

func newLeafWithChunks(chunks []chunk) *node {
	n := &node{height: 0, chunks: chunks}
	for _, c := range chunks {
		n.sum = n.sum.add(c.sum)
	}
	return n
}

func newInternal(children []*node) *node {
	if len(children) == 0 {
		return newLeaf()
	}

	sums := make([]Summary, len(children))
	var total Summary
	for i, child := range children {
		sums[i] = child.sum
		total = total.add(child.sum)
	}

	return &node{
		height:    children[0].height + 1,
		sum:       total,
		children:  children,
		childSums: sums,
	}
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

func (n *node) clone() *node {
	if n.isLeaf() {
		chunks := make([]chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &node{height: 0, sum: n.sum, chunks: chunks}
	}

	children := make([]*node, len(n.children))
	copy(children, n.children)
	sums := make([]Summary, len(n.childSums))
	copy(sums, n.childSums)
	return &node{height: n.height, sum: n.sum, children: children, childSums: sums}
}

func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.text)
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends the text in the char range [start, end) to sb.
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}

	if n.isLeaf() {
		offset := 0
		for _, c := range n.chunks {
			chunkEnd := offset + c.sum.Chars
			if chunkEnd <= start {
				offset = chunkEnd
				continue
			}
			if offset >= end {
				break
			}

			from := 0
			if start > offset {
				from = start - offset
			}
			to := c.sum.Chars
			if end < chunkEnd {
				to = end - offset
			}
			sb.WriteString(c.text[byteIdxOfChar(c.text, from):byteIdxOfChar(c.text, to)])
			offset = chunkEnd
		}
		return
	}

	offset := 0
	for i, child := range n.children {
		childEnd := offset + n.childSums[i].Chars
		if childEnd <= start {
			offset = childEnd
			continue
		}
		if offset >= end {
			break
		}

		from := 0
		if start > offset {
			from = start - offset
		}
		to := n.childSums[i].Chars
		if end < childEnd {
			to = end - offset
		}
		child.appendRange(sb, from, to)
		offset = childEnd
	}
}

// charAt returns the rune at the given char offset. The caller
// guarantees offset < n.sum.Chars.
func (n *node) charAt(offset int) rune {
	for !n.isLeaf() {
		i, rest := n.findChildByChar(offset)
		n = n.children[i]
		offset = rest
	}
	for _, c := range n.chunks {
		if offset < c.sum.Chars {
			return c.charAt(offset)
		}
		offset -= c.sum.Chars
	}
	return 0
}

// charToByte converts a char offset into a byte offset.
func (n *node) charToByte(offset int) int {
	if offset >= n.sum.Chars {
		return n.sum.Bytes
	}

	bytes := 0
	for !n.isLeaf() {
		i, rest := n.findChildByChar(offset)
		for j := 0; j < i; j++ {
			bytes += n.childSums[j].Bytes
		}
		n = n.children[i]
		offset = rest
	}
	for _, c := range n.chunks {
		if offset < c.sum.Chars {
			return bytes + byteIdxOfChar(c.text, offset)
		}
		bytes += c.sum.Bytes
		offset -= c.sum.Chars
	}
	return bytes
}

// byteToChar converts a byte offset into a char offset.
func (n *node) byteToChar(offset int) int {
	if offset >= n.sum.Bytes {
		return n.sum.Chars
	}

	chars := 0
	for !n.isLeaf() {
		i := 0
		for ; i < len(n.childSums)-1; i++ {
			if offset < n.childSums[i].Bytes {
				break
			}
			offset -= n.childSums[i].Bytes
			chars += n.childSums[i].Chars
		}
		n = n.children[i]
	}
	for _, c := range n.chunks {
		if offset < c.sum.Bytes {
			cnt := 0
			for i := range c.text {
				if i >= offset {
					break
				}
				cnt++
			}
			return chars + cnt
		}
		offset -= c.sum.Bytes
		chars += c.sum.Chars
	}
	return chars
}

// newlinesBefore counts newlines in the char range [0, offset).
func (n *node) newlinesBefore(offset int) int {
	if offset >= n.sum.Chars {
		return n.sum.Newlines
	}

	count := 0
	for !n.isLeaf() {
		i, rest := n.findChildByChar(offset)
		for j := 0; j < i; j++ {
			count += n.childSums[j].Newlines
		}
		n = n.children[i]
		offset = rest
	}
	for _, c := range n.chunks {
		if offset < c.sum.Chars {
			return count + c.newlinesBefore(offset)
		}
		count += c.sum.Newlines
		offset -= c.sum.Chars
	}
	return count
}

// charOfNewline returns the char offset of the k-th newline (1-based),
// or -1 if the subtree holds fewer than k newlines.
func (n *node) charOfNewline(k int) int {
	if k <= 0 || k > n.sum.Newlines {
		return -1
	}

	chars := 0
	for !n.isLeaf() {
		i := 0
		for ; i < len(n.children)-1; i++ {
			if k <= n.childSums[i].Newlines {
				break
			}
			k -= n.childSums[i].Newlines
			chars += n.childSums[i].Chars
		}
		n = n.children[i]
	}
	for _, c := range n.chunks {
		if k <= c.sum.Newlines {
			return chars + c.charOfNewline(k)
		}
		k -= c.sum.Newlines
		chars += c.sum.Chars
	}
	return -1
}

// findChildByChar finds the child containing the given char offset.
// Returns the child index and the offset within that child.
func (n *node) findChildByChar(offset int) (int, int) {
	current := 0
	for i, sum := range n.childSums {
		if current+sum.Chars > offset {
			return i, offset - current
		}
		current += sum.Chars
	}
	last := len(n.children) - 1
	return last, offset - (n.sum.Chars - n.childSums[last].Chars)
}

// split divides the node at the given char offset. Left holds
// [0, offset), right holds [offset, end).
func (n *node) split(offset int) (*node, *node) {
	if offset <= 0 {
		return newLeaf(), n.clone()
	}
	if offset >= n.sum.Chars {
		return n.clone(), newLeaf()
	}
	if n.isLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *node) splitLeaf(offset int) (*node, *node) {
	var left, right []chunk
	current := 0

	for _, c := range n.chunks {
		switch {
		case current+c.sum.Chars <= offset:
			left = append(left, c)
		case current >= offset:
			right = append(right, c)
		default:
			l, r := c.split(offset - current)
			if !l.isEmpty() {
				left = append(left, l)
			}
			if !r.isEmpty() {
				right = append(right, r)
			}
		}
		current += c.sum.Chars
	}

	return newLeafWithChunks(left), newLeafWithChunks(right)
}

func (n *node) splitInternal(offset int) (*node, *node) {
	var left, right []*node
	current := 0

	for i, child := range n.children {
		childChars := n.childSums[i].Chars
		switch {
		case current+childChars <= offset:
			left = append(left, child)
		case current >= offset:
			right = append(right, child)
		default:
			l, r := child.split(offset - current)
			if l.sum.Chars > 0 {
				left = append(left, l)
			}
			if r.sum.Chars > 0 {
				right = append(right, r)
			}
		}
		current += childChars
	}

	return buildFromChildren(left), buildFromChildren(right)
}

// buildFromChildren creates a balanced tree from a list of nodes of
// possibly unequal heights produced by a split.
func buildFromChildren(children []*node) *node {
	if len(children) == 0 {
		return newLeaf()
	}
	if len(children) == 1 {
		return children[0]
	}

	out := children[0]
	for _, child := range children[1:] {
		out = concatNodes(out, child)
	}
	return out
}

// concatNodes concatenates two subtrees, keeping the result balanced
// within MaxChildren bounds.
func concatNodes(left, right *node) *node {
	if left == nil || left.sum.Chars == 0 {
		if right == nil {
			return newLeaf()
		}
		return right
	}
	if right == nil || right.sum.Chars == 0 {
		return left
	}

	if left.isLeaf() && right.isLeaf() {
		return concatLeaves(left, right)
	}

	for left.height < right.height {
		left = newInternal([]*node{left})
	}
	for right.height < left.height {
		right = newInternal([]*node{right})
	}
	return mergeNodes(left, right)
}

func concatLeaves(left, right *node) *node {
	total := len(left.chunks) + len(right.chunks)
	if total <= MaxChunksPerLeaf {
		chunks := make([]chunk, 0, total)
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return newLeafWithChunks(chunks)
	}
	return newInternal([]*node{left.clone(), right.clone()})
}

// mergeNodes merges two nodes of the same height.
func mergeNodes(left, right *node) *node {
	if left.isLeaf() {
		return concatLeaves(left, right)
	}

	all := make([]*node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	all = append(all, right.children...)

	if len(all) <= MaxChildren {
		return newInternal(all)
	}

	var parents []*node
	for i := 0; i < len(all); i += MaxChildren {
		end := i + MaxChildren
		if end > len(all) {
			end = len(all)
		}
		parents = append(parents, newInternal(all[i:end]))
	}
	if len(parents) == 1 {
		return parents[0]
	}
	return newInternal(parents)
}
