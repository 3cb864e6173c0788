package types

// WordEntry is a single vocabulary entry. Term is the unique key;
// Phonetic and Example may be empty.
type WordEntry struct {
	Term     string
	Meaning  string
	Phonetic string
	Example  string
}

// Progress holds the learning counters for one term. Seen, Known and
// Unknown are monotonic tallies, not booleans: a term judged wrong three
// times carries Unknown == 3.
type Progress struct {
	Seen    uint `json:"seen"`
	Known   uint `json:"known"`
	Unknown uint `json:"unknown"`
	Starred bool `json:"starred"`
}

// Outcome is a recall judgment recorded in learning or spelling mode.
type Outcome int

const (
	OutcomeKnown Outcome = iota
	OutcomeUnknown
)

// Stats summarizes the word table. Each field counts distinct terms,
// not judgment events: Known is the number of terms with Known > 0.
type Stats struct {
	Total   int
	Seen    int
	Known   int
	Unknown int
	Starred int
}
