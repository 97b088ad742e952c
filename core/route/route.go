package route

import "strconv"

// Route describes which cluster node(s) a command targets. A nil Route means
// no directive was given; the command's default cluster behavior applies.
type Route interface {
	route()
}

type (
	// ByAddress targets the node listening on Host:Port.
	ByAddress struct {
		Host string
		Port int
	}

	// BySlotID targets the node owning the given slot. Replica selects the
	// slot's replica instead of its primary.
	BySlotID struct {
		ID      uint32
		Replica bool
	}

	// BySlotKey targets the node owning the slot the key hashes to.
	BySlotKey struct {
		Key     string
		Replica bool
	}

	// Random targets one arbitrary node.
	Random struct{}

	// AllNodes fans the command out to every node, primaries and replicas.
	AllNodes struct{}

	// AllPrimaries fans the command out to every primary.
	AllPrimaries struct{}
)

func (ByAddress) route()    {}
func (BySlotID) route()     {}
func (BySlotKey) route()    {}
func (Random) route()       {}
func (AllNodes) route()     {}
func (AllPrimaries) route() {}

func (a ByAddress) String() string {
	return a.Host + ":" + strconv.Itoa(a.Port)
}

// IsMulti reports whether r explicitly targets more than one node.
// A nil (implicit) route is not multi; its cardinality depends on the command.
func IsMulti(r Route) bool {
	switch r.(type) {
	case AllNodes, AllPrimaries:
		return true
	default:
		return false
	}
}

// IsSingle reports whether r explicitly targets exactly one node.
func IsSingle(r Route) bool {
	return r != nil && !IsMulti(r)
}
