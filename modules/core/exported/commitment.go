package exported

// Root is the interface for commitment root.
// A root is constructed from a set of key-value pairs,
// and the inclusion or non-inclusion of an arbitrary key-value pair
// can be proven with the proof.
type Root interface {
	GetHash() []byte
	Empty() bool
}

// Prefix is the interface for commitment prefixes.
// A prefix is prepended to every path before the proof is verified.
type Prefix interface {
	Bytes() []byte
	Empty() bool
}

// Path is the path used to verify commitment proofs, which can be an arbitrary
// structured object (defined by a commitment type).
type Path interface {
	String() string
	Empty() bool
}

// Proof is the interface for a commitment proof.
type Proof interface {
	Empty() bool
	ValidateBasic() error
}
