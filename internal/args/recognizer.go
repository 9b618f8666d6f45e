// Package args recognizes a fixed vocabulary of option tokens in a raw
// argument list and pairs each recognized option with the value following it.
package args

// Record is the outcome for one vocabulary entry.
type Record struct {
	Option string
	Value  string
	Found  bool
}

// Order selects how records are laid out in a Result.
type Order int

const (
	// OrderDeclared lists every record in vocabulary declaration order.
	OrderDeclared Order = iota
	// OrderDiscovered lists found options in the order they first appear in
	// the tokens, followed by the unfound ones in declaration order.
	OrderDiscovered
)

// Result holds one Record per distinct vocabulary entry.
type Result struct {
	records []Record
	index   map[string]int
}

func (r Result) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

func (r Result) Len() int { return len(r.records) }

func (r Result) Lookup(option string) (Record, bool) {
	i, ok := r.index[option]
	if !ok {
		return Record{}, false
	}
	return r.records[i], true
}

func (r Result) Found(option string) bool {
	rec, _ := r.Lookup(option)
	return rec.Found
}

func (r Result) Value(option string) string {
	rec, _ := r.Lookup(option)
	return rec.Value
}

// Recognizer matches tokens against a fixed vocabulary. It keeps no state
// between calls to Parse, so one Recognizer may be shared across goroutines.
type Recognizer struct {
	vocabulary []string
	known      map[string]int // entry -> declaration position
	order      Order
}

// NewRecognizer stores vocabulary as given. Repeated entries are not an
// error; they collapse onto their first declaration.
func NewRecognizer(vocabulary []string, order Order) *Recognizer {
	r := &Recognizer{
		known: make(map[string]int, len(vocabulary)),
		order: order,
	}
	for _, opt := range vocabulary {
		if _, dup := r.known[opt]; dup {
			continue
		}
		r.known[opt] = len(r.vocabulary)
		r.vocabulary = append(r.vocabulary, opt)
	}
	return r
}

// Parse is the pure-function form of NewRecognizer(vocabulary, OrderDeclared).Parse(tokens).
func Parse(vocabulary, tokens []string) Result {
	return NewRecognizer(vocabulary, OrderDeclared).Parse(tokens)
}

func (r *Recognizer) Vocabulary() []string {
	out := make([]string, len(r.vocabulary))
	copy(out, r.vocabulary)
	return out
}

func (r *Recognizer) Contains(token string) bool {
	_, ok := r.known[token]
	return ok
}

// Parse never fails. The last occurrence of a repeated option decides its
// value, and a following token that is itself an option is never taken as
// a value.
func (r *Recognizer) Parse(tokens []string) Result {
	// <== locate ==>
	last := make(map[string]int, len(r.vocabulary))
	var discovered []string
	for i, tok := range tokens {
		if !r.Contains(tok) {
			continue
		}
		if _, seen := last[tok]; !seen {
			discovered = append(discovered, tok)
		}
		last[tok] = i
	}

	// <== extract ==>
	extract := func(opt string) Record {
		idx, ok := last[opt]
		if !ok {
			return Record{Option: opt}
		}
		rec := Record{Option: opt, Found: true}
		if next := idx + 1; next < len(tokens) && !r.Contains(tokens[next]) {
			rec.Value = tokens[next]
		}
		return rec
	}

	res := Result{
		records: make([]Record, 0, len(r.vocabulary)),
		index:   make(map[string]int, len(r.vocabulary)),
	}
	add := func(rec Record) {
		res.index[rec.Option] = len(res.records)
		res.records = append(res.records, rec)
	}

	switch r.order {
	case OrderDiscovered:
		for _, opt := range discovered {
			add(extract(opt))
		}
		// <== backfill ==>
		for _, opt := range r.vocabulary {
			if _, ok := last[opt]; !ok {
				add(Record{Option: opt})
			}
		}
	default:
		for _, opt := range r.vocabulary {
			add(extract(opt))
		}
	}
	return res
}
