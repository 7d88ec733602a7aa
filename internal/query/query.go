package query

// Command selects what the executor does with matching candidates.
type Command int

const (
	CommandFind Command = iota
	CommandCount
	CommandExtract
)

func (c Command) String() string {
	switch c {
	case CommandCount:
		return "COUNT"
	case CommandExtract:
		return "EXTRACT"
	}
	return "FIND"
}

// Target selects the candidate unit: whole lines or individual words.
type Target int

const (
	TargetLines Target = iota
	TargetWords
)

func (t Target) String() string {
	if t == TargetWords {
		return "WORDS"
	}
	return "LINES"
}

// OutputFormat selects how results are rendered by the formatter.
type OutputFormat int

const (
	OutputText OutputFormat = iota
	OutputJSON
	OutputCSV
)

func (o OutputFormat) String() string {
	switch o {
	case OutputJSON:
		return "JSON"
	case OutputCSV:
		return "CSV"
	}
	return "TEXT"
}

// ConditionKind is the matching primitive a condition compiles to.
type ConditionKind int

const (
	KindContains ConditionKind = iota
	KindStartsWith
	KindEndsWith
	// KindMatches inserts the condition value into the compiled pattern
	// verbatim. The author of a MATCHES clause is trusted to supply a
	// valid fragment; a bad one surfaces as a PatternError at match time.
	KindMatches
	KindRepeat
)

func (k ConditionKind) String() string {
	switch k {
	case KindStartsWith:
		return "STARTS WITH"
	case KindEndsWith:
		return "ENDS WITH"
	case KindMatches:
		return "MATCHES"
	case KindRepeat:
		return "REPEAT"
	}
	return "CONTAINS"
}

// Logic is how a condition combines with the accumulated group before it.
// The first condition of a WHERE clause has no left operand; its field is
// set to LogicAnd and the compiler honors whatever value is present.
type Logic int

const (
	LogicAnd Logic = iota
	LogicOr
)

func (l Logic) String() string {
	if l == LogicOr {
		return "OR"
	}
	return "AND"
}

// Condition is one clause of a WHERE list. Quantifier is populated only
// when Kind is KindRepeat and holds a regex repetition count such as
// "{2,}" or "{1,3}".
type Condition struct {
	Kind       ConditionKind
	Value      string
	Negated    bool
	Logic      Logic
	Quantifier string
}

// Modifiers are the query-wide flags. Zero value means all off.
type Modifiers struct {
	IgnoreCase   bool
	Multiline    bool
	DotAll       bool
	WholeWord    bool
	ContextLines int
}

// Query is the structured form of one parsed query. It is built once by
// the parser and never mutated afterwards.
type Query struct {
	Command        Command
	Target         Target
	Conditions     []Condition
	Modifiers      Modifiers
	ExtractPattern string // only set when Command is CommandExtract
	FilePattern    string // empty means the default input source
	Output         OutputFormat
}
