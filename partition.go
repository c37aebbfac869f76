package polcat

// Scheme identifies one of the index's partitioning schemes.
type Scheme string

// Index partitioning schemes.
const (
	SchemeAlphabetical Scheme = "alphabetical"
	SchemeType         Scheme = "type"
)

// Precedence orders schemes for merging. Documents from a scheme with
// higher precedence overwrite documents from one with lower precedence,
// so the type scheme, whose types are authoritative, always wins over the
// alphabetical scheme, whose types are inferred.
func (s Scheme) Precedence() int {
	switch s {
	case SchemeType:
		return 1
	default:
		return 0
	}
}

// Partition is one query of the index restricted to a subset: a letter or
// the digit bucket for the alphabetical scheme, a type label for the type
// scheme.
type Partition struct {
	Scheme Scheme
	Subset string
}

func (p Partition) String() string {
	return string(p.Scheme) + ":" + p.Subset
}

// AuthoritativeType returns the type every document in the partition has,
// or an empty type when the partition does not determine it.
func (p Partition) AuthoritativeType() DocumentType {
	if p.Scheme == SchemeType {
		return DocumentType(p.Subset)
	}
	return ""
}

// AlphabeticalPartitions returns the digit bucket "1" followed by A to Z.
func AlphabeticalPartitions() []Partition {
	partitions := make([]Partition, 0, 27)
	partitions = append(partitions, Partition{Scheme: SchemeAlphabetical, Subset: "1"})
	for c := 'A'; c <= 'Z'; c++ {
		partitions = append(partitions, Partition{Scheme: SchemeAlphabetical, Subset: string(c)})
	}
	return partitions
}

// TypePartitions returns one partition per vocabulary entry, in vocabulary order.
func TypePartitions(vocab Vocabulary) []Partition {
	partitions := make([]Partition, 0, len(vocab))
	for _, t := range vocab {
		partitions = append(partitions, Partition{Scheme: SchemeType, Subset: string(t)})
	}
	return partitions
}

// Phase is the set of partitions of one scheme. All partitions of a phase
// are processed before the next phase begins.
type Phase struct {
	Scheme     Scheme
	Partitions []Partition
}

// Phases returns every partition to query, grouped by scheme in merge order.
func Phases(vocab Vocabulary) []Phase {
	return []Phase{
		{Scheme: SchemeAlphabetical, Partitions: AlphabeticalPartitions()},
		{Scheme: SchemeType, Partitions: TypePartitions(vocab)},
	}
}
