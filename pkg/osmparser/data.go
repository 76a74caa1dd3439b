package osmparser

// Way is one raw osm way record. it is consumed by the graph builder and then dropped.
type Way struct {
	ID    int64
	Nodes []int64
	Tags  map[string]string
}

type Node struct {
	ID   int64
	Lat  float64
	Lon  float64
	Tags map[string]string
}

// WaySource yields every way once, in any order. scanning stops at the first error returned by fn.
type WaySource interface {
	ScanWays(fn func(w Way) error) error
}

// NodeSource yields every node once, in any order. scanning stops at the first error returned by fn.
type NodeSource interface {
	ScanNodes(fn func(n Node) error) error
}

// Records is an in-memory WaySource and NodeSource.
type Records struct {
	Ways  []Way
	Nodes []Node
}

func NewRecords(ways []Way, nodes []Node) *Records {
	return &Records{Ways: ways, Nodes: nodes}
}

func (r *Records) ScanWays(fn func(w Way) error) error {
	for _, w := range r.Ways {
		if err := fn(w); err != nil {
			return err
		}
	}
	return nil
}

func (r *Records) ScanNodes(fn func(n Node) error) error {
	for _, n := range r.Nodes {
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}
