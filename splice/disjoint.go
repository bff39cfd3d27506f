// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

// djSet implements a disjoint set finder over cluster ids using the
// union-find algorithm.
type djSet map[int]*dsNode

// add adds e to the collection of sets held by the disjoint set.
func (s djSet) add(e int) {
	if _, ok := s[e]; ok {
		return
	}
	s[e] = &dsNode{id: e}
}

// union joins the sets containing a and b and returns the id
// of the root of the joined set.
func (s djSet) union(a, b int) int {
	ra := find(s[a])
	rb := find(s[b])
	if ra == rb {
		return ra.id
	}
	if ra.rank < rb.rank {
		ra.parent = rb
		return rb.id
	}
	rb.parent = ra
	if ra.rank == rb.rank {
		ra.rank++
	}
	return ra.id
}

// find returns the id of the root of the set containing e, or -1
// if e is not held by the disjoint set.
func (s djSet) find(e int) int {
	n, ok := s[e]
	if !ok {
		return -1
	}
	return find(n).id
}

// find returns the root of the set containing the set node, n,
// compressing the path to the root.
func find(n *dsNode) *dsNode {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	for n != root {
		next := n.parent
		n.parent = root
		n = next
	}
	return root
}

// dsNode is a disjoint set element.
type dsNode struct {
	id     int
	parent *dsNode
	rank   int
}
