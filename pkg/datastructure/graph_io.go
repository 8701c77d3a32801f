package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/prefroute/pkg"
	"github.com/lintang-b-s/prefroute/pkg/util"
)

/*
graph file, bzip2-compressed text:

	numVertices numEdges
	lat lon level                     (numVertices lines)
	from to c_0 .. c_{D-1} repl1 repl2 (numEdges lines, -1 = no replaced edge)
*/

func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", len(g.vertices), len(g.edges))

	for _, v := range g.vertices {
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)
		fmt.Fprintf(w, "%s %s %d\n", latF, lonF, v.level)
	}

	for _, e := range g.edges {
		fmt.Fprintf(w, "%d %d", e.from, e.to)
		for _, c := range e.costs {
			fmt.Fprintf(w, " %s", strconv.FormatFloat(c, 'f', -1, 64))
		}
		fmt.Fprintf(w, " %d %d\n", formatReplaced(e.replaced[0]), formatReplaced(e.replaced[1]))
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return bz.Close()
}

func formatReplaced(eId Index) int64 {
	if eId == INVALID_EDGE_ID {
		return -1
	}
	return int64(eId)
}

const maxPreallocatedRecords = 1 << 20

func ReadGraph(filename string, unpackCacheSize int) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidGraphFile, err)
	}
	tokens := util.Fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("%w: expected 2 header fields, got %d", ErrInvalidGraphFile, len(tokens))
	}
	numVertices, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, err
	}

	// header counts are not trusted for allocation, a corrupt header fails on the first missing line
	vertices := make([]Vertex, 0, min(int(numVertices), maxPreallocatedRecords))
	for i := 0; i < int(numVertices); i++ {
		vertexLine, err := util.ReadLine(br)
		if err != nil {
			return nil, fmt.Errorf("%w: vertex %d: %v", ErrInvalidGraphFile, i, err)
		}
		v, err := parseVertex(vertexLine, Index(i))
		if err != nil {
			return nil, err
		}
		vertices = append(vertices, v)
	}

	edges := make([]Edge, 0, min(int(numEdges), maxPreallocatedRecords))
	for i := 0; i < int(numEdges); i++ {
		edgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, fmt.Errorf("%w: edge %d: %v", ErrInvalidGraphFile, i, err)
		}
		e, err := parseEdge(edgeLine)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}

	return NewGraph(vertices, edges, unpackCacheSize)
}

func parseVertex(line string, id Index) (Vertex, error) {
	tokens := util.Fields(line)
	if len(tokens) != 3 {
		return Vertex{}, fmt.Errorf("%w: expected 3 vertex fields, got %d", ErrInvalidGraphFile, len(tokens))
	}
	lat, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return Vertex{}, fmt.Errorf("lat: %w", err)
	}
	lon, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return Vertex{}, fmt.Errorf("lon: %w", err)
	}
	level, err := ParseIndex(tokens[2])
	if err != nil {
		return Vertex{}, err
	}
	return NewVertex(lat, lon, level, id), nil
}

func parseEdge(line string) (Edge, error) {
	tokens := util.Fields(line)
	want := 2 + pkg.COST_DIMENSION + 2
	if len(tokens) != want {
		return Edge{}, fmt.Errorf("%w: expected %d edge fields, got %d", ErrInvalidGraphFile, want, len(tokens))
	}
	from, err := ParseIndex(tokens[0])
	if err != nil {
		return Edge{}, err
	}
	to, err := ParseIndex(tokens[1])
	if err != nil {
		return Edge{}, err
	}
	var costs CostVector
	for i := 0; i < pkg.COST_DIMENSION; i++ {
		costs[i], err = strconv.ParseFloat(tokens[2+i], 64)
		if err != nil {
			return Edge{}, fmt.Errorf("cost %d: %w", i, err)
		}
	}
	replOne, err := parseReplaced(tokens[2+pkg.COST_DIMENSION])
	if err != nil {
		return Edge{}, err
	}
	replTwo, err := parseReplaced(tokens[3+pkg.COST_DIMENSION])
	if err != nil {
		return Edge{}, err
	}
	return NewShortcut(from, to, costs, replOne, replTwo), nil
}

func parseReplaced(token string) (Index, error) {
	val, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return INVALID_EDGE_ID, fmt.Errorf("replaced edge: %w", err)
	}
	if val < 0 {
		return INVALID_EDGE_ID, nil
	}
	return Index(val), nil
}

func ParseIndex(token string) (Index, error) {
	val, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidGraphFile, err)
	}
	return Index(val), nil
}
