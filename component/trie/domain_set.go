package trie

// Package succinct provides several succinct data types.
// Modify from https://github.com/openacid/succinct/blob/d4684c35d123f7528b14e03c24327231723db704/sskv.go

import (
	"sort"
	"strings"

	"github.com/skymkmk/domain-list-to-srs/common/utils"

	"github.com/openacid/low/bitmap"
	"github.com/samber/lo"
)

const (
	// prefixLabel marks a suffix that matches subdomains only (".example.com").
	prefixLabel = byte('\r')
	// rootLabel marks a suffix that matches the domain itself and its subdomains.
	rootLabel      = byte('\n')
	domainStepByte = byte('.')
)

// DomainSet is a level-order succinct trie over reversed domains.
type DomainSet struct {
	leaves, labelBitmap []uint64
	labels              []byte
	ranks, selects      []int32
	nodes               int
}

type qElt struct{ s, e, col int }

// NewDomainSet creates a new *DomainSet from exact domains and domain
// suffixes. It returns nil when both are empty, since an SRS domain block
// must never be empty.
func NewDomainSet(domains, suffixes []string) *DomainSet {
	keys := make([]string, 0, len(domains)+len(suffixes))
	for _, suffix := range suffixes {
		if strings.HasPrefix(suffix, ".") {
			keys = append(keys, utils.Reverse(string(prefixLabel)+suffix))
		} else {
			keys = append(keys, utils.Reverse(string(rootLabel)+suffix))
		}
	}
	for _, domain := range domains {
		keys = append(keys, utils.Reverse(domain))
	}
	if len(keys) == 0 {
		return nil
	}
	// equal prefixes must be continuous
	keys = lo.Uniq(keys)
	sort.Strings(keys)

	ss := &DomainSet{}
	lIdx := 0

	queue := []qElt{{0, len(keys), 0}}
	for i := 0; i < len(queue); i++ {
		elt := queue[i]
		if elt.col == len(keys[elt.s]) {
			elt.s++
			// a leaf node
			setBit(&ss.leaves, i, 1)
		}

		for j := elt.s; j < elt.e; {

			frm := j

			for ; j < elt.e && keys[j][elt.col] == keys[frm][elt.col]; j++ {
			}
			queue = append(queue, qElt{frm, j, elt.col + 1})
			ss.labels = append(ss.labels, keys[frm][elt.col])
			setBit(&ss.labelBitmap, lIdx, 0)
			lIdx++
		}
		setBit(&ss.labelBitmap, lIdx, 1)
		lIdx++
	}
	ss.nodes = len(queue)

	ss.init()
	return ss
}

// NodeCount returns the number of trie nodes, which is also the number of
// "1" bits in the label bitmap.
func (ss *DomainSet) NodeCount() int {
	return ss.nodes
}

// EdgeCount returns the number of labels.
func (ss *DomainSet) EdgeCount() int {
	return len(ss.labels)
}

func (ss *DomainSet) Leaves() []uint64 {
	return ss.leaves
}

func (ss *DomainSet) LabelBitmap() []uint64 {
	return ss.labelBitmap
}

func (ss *DomainSet) Labels() []byte {
	return ss.labels
}

// Match reports whether domain is accepted by the set: equal to an exact
// domain, a strict subdomain of a ".suffix", or equal to or a subdomain of
// a plain suffix.
func (ss *DomainSet) Match(domain string) bool {
	if ss == nil {
		return false
	}
	key := utils.Reverse(domain)
	nodeId, bmIdx := 0, 0
	for i := 0; ; i++ {
		// suffix markers hang off the node reached so far
		for j := bmIdx; getBit(ss.labelBitmap, j) == 0; j++ {
			switch ss.labels[j-nodeId] {
			case rootLabel:
				if i == len(key) || key[i] == domainStepByte {
					return true
				}
			case prefixLabel:
				if i < len(key) {
					return true
				}
			}
		}
		if i == len(key) {
			return getBit(ss.leaves, nodeId) != 0
		}
		c := key[i]
		for ; ; bmIdx++ {
			if getBit(ss.labelBitmap, bmIdx) != 0 {
				// no more labels in this node
				return false
			}
			if ss.labels[bmIdx-nodeId] == c {
				break
			}
		}
		nodeId = countZeros(ss.labelBitmap, ss.ranks, bmIdx+1)
		bmIdx = selectIthOne(ss.labelBitmap, ss.ranks, ss.selects, nodeId-1) + 1
	}
}

// keys walks every stored (transformed) key in ascending order.
func (ss *DomainSet) keys(f func(key string) bool) {
	var currentKey []byte
	var traverse func(int, int) bool
	traverse = func(nodeId, bmIdx int) bool {
		if getBit(ss.leaves, nodeId) != 0 {
			if !f(string(currentKey)) {
				return false
			}
		}

		for ; ; bmIdx++ {
			if getBit(ss.labelBitmap, bmIdx) != 0 {
				return true
			}
			nextLabel := ss.labels[bmIdx-nodeId]
			currentKey = append(currentKey, nextLabel)
			nextNodeId := countZeros(ss.labelBitmap, ss.ranks, bmIdx+1)
			nextBmIdx := selectIthOne(ss.labelBitmap, ss.ranks, ss.selects, nextNodeId-1) + 1
			if !traverse(nextNodeId, nextBmIdx) {
				return false
			}
			currentKey = currentKey[:len(currentKey)-1]
		}
	}

	traverse(0, 0)
}

// Foreach calls f with every exact domain and suffix in the set, in the
// form they were given to NewDomainSet.
func (ss *DomainSet) Foreach(f func(domain string, suffix bool) bool) {
	ss.keys(func(key string) bool {
		if n := len(key); n > 0 && (key[n-1] == rootLabel || key[n-1] == prefixLabel) {
			return f(utils.Reverse(key[:n-1]), true)
		}
		return f(utils.Reverse(key), false)
	})
}

func setBit(bm *[]uint64, i int, v int) {
	for i>>6 >= len(*bm) {
		*bm = append(*bm, 0)
	}
	(*bm)[i>>6] |= uint64(v) << uint(i&63)
}

func getBit(bm []uint64, i int) uint64 {
	if i>>6 >= len(bm) {
		return 0
	}
	return bm[i>>6] & (1 << uint(i&63))
}

// init builds pre-calculated cache to speed up rank() and select()
func (ss *DomainSet) init() {
	ss.selects, ss.ranks = bitmap.IndexSelect32R64(ss.labelBitmap)
}

// countZeros counts the number of "0" in a bitmap before the i-th bit(excluding
// the i-th bit) on behalf of rank index.
// E.g.:
//
//	countZeros("010010", 4) == 3
//	//          012345
func countZeros(bm []uint64, ranks []int32, i int) int {
	a, _ := bitmap.Rank64(bm, ranks, int32(i))
	return i - int(a)
}

// selectIthOne returns the index of the i-th "1" in a bitmap, on behalf of rank
// and select indexes.
// E.g.:
//
//	selectIthOne("010010", 1) == 4
//	//            012345
func selectIthOne(bm []uint64, ranks, selects []int32, i int) int {
	a, _ := bitmap.Select32R64(bm, selects, ranks, int32(i))
	return int(a)
}
