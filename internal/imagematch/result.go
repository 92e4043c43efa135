package imagematch

// Status is the terminal outcome of matching one card record.
type Status string

const (
	// StatusFound means exactly one file passed the hard rules and achieved
	// the strictly highest score.
	StatusFound Status = "found"
	// StatusMissing means no file survived the hard rules and token check.
	StatusMissing Status = "missing"
	// StatusConflict means two or more files tied for the highest score.
	StatusConflict Status = "conflict"
	// StatusEmpty means the card record carried no matchable text.
	StatusEmpty Status = "empty"
)

// Result is the outcome of one card-to-image match. A card reaches exactly
// one terminal status; there are no retries or partial states.
type Result struct {
	Status        Status
	MatchedFile   string
	ConflictFiles []string
	Score         int
	Diagnostic    string
}
