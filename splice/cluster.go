// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package splice

// edge is a directed edge between two ids.
type edge struct{ from, to int64 }

// intron is a splice junction shared by every alignment with
// the same junction coordinates.
type intron struct {
	id int64
	Key

	// cluster is the id of the local cluster the intron
	// was placed in. The intron's current cluster is the
	// root of that id in the session's disjoint set.
	cluster int

	// exons holds the exon edges spanning the intron.
	exons map[edge]struct{}
}

func newIntron(id int64, k Key) *intron {
	return &intron{id: id, Key: k, exons: make(map[edge]struct{})}
}

// cluster is a local cluster: a directed graph of introns that have
// been seen together in alignments.
type cluster struct {
	id    int
	nodes map[int64]struct{}
	edges map[edge]struct{}
}

func newCluster(id int) *cluster {
	return &cluster{
		id:    id,
		nodes: make(map[int64]struct{}),
		edges: make(map[edge]struct{}),
	}
}

// addPath adds the chain of introns to the cluster. A single intron
// is added as an isolated node.
func (c *cluster) addPath(introns []*intron) {
	for i, in := range introns {
		c.nodes[in.id] = struct{}{}
		if i != 0 && introns[i-1].id != in.id {
			c.edges[edge{from: introns[i-1].id, to: in.id}] = struct{}{}
		}
	}
}

// absorb adds the nodes and edges of o to c.
func (c *cluster) absorb(o *cluster) {
	for n := range o.nodes {
		c.nodes[n] = struct{}{}
	}
	for e := range o.edges {
		c.edges[e] = struct{}{}
	}
}
