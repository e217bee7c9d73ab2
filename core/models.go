package core

// InputType identifies the kind of content a pipeline invocation summarizes.
// It selects the extraction branch and never changes after the state is created.
type InputType string

const (
	// InputText is literal plain text.
	InputText InputType = "text"
	// InputPDF is a filesystem path to a PDF document.
	InputPDF InputType = "pdf"
	// InputURL is a web page or feed URL.
	InputURL InputType = "url"
	// InputEmail is a pre-formatted email body.
	InputEmail InputType = "email"
	// InputVideo is a YouTube watch or short URL.
	InputVideo InputType = "video"
	// InputAudio is a filesystem path to an audio recording.
	InputAudio InputType = "audio"
	// InputDigest is a serialized list of items summarized together.
	InputDigest InputType = "digest"
)

// InputTypes lists every supported input type in routing order.
var InputTypes = []InputType{
	InputText,
	InputPDF,
	InputURL,
	InputEmail,
	InputVideo,
	InputAudio,
	InputDigest,
}

// Label returns the human readable name used in stage error prefixes,
// e.g. "PDF" for "PDF extraction error: ...".
func (t InputType) Label() string {
	switch t {
	case InputText:
		return "Text"
	case InputPDF:
		return "PDF"
	case InputURL:
		return "URL"
	case InputEmail:
		return "Email"
	case InputVideo:
		return "Video"
	case InputAudio:
		return "Audio"
	case InputDigest:
		return "Digest"
	default:
		return string(t)
	}
}

// String implements fmt.Stringer.
func (t InputType) String() string {
	return string(t)
}

// State is the record threaded through every stage of one pipeline invocation.
// It is created by the caller with InputType and Content set, mutated in place by
// the stages the engine visits and handed back at the terminal node.
type State struct {
	InputType     InputType
	Content       string    // Literal text, path, URL or serialized item list
	ExtractedText string    // Populated by the extraction stage
	Chunks        []string  // Populated by the chunk stage
	Summaries     []string  // One per chunk, same order (populated by the summarize stage)
	FinalSummary  string    // Terminal output (populated by the reduce stage)
	Metadata      *Metadata // Accumulated across stages, never pruned
	Err           *StageError
	Trace         []string // Names of the stages visited, in order
}

// NewState creates the initial state for one invocation.
func NewState(inputType InputType, content string) *State {
	return &State{
		InputType: inputType,
		Content:   content,
		Metadata:  NewMetadata(),
	}
}

// Fail records a stage failure. The first failure wins and is never cleared;
// Fail reports whether err was recorded.
func (s *State) Fail(err *StageError) bool {
	if err == nil || s.Err != nil {
		return false
	}
	s.Err = err
	return true
}

// Failed reports whether any stage has recorded a failure.
func (s *State) Failed() bool {
	return s.Err != nil
}

// ErrorMessage returns the recorded failure as a string, or "" if none.
func (s *State) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Visit appends a stage name to the trace.
func (s *State) Visit(stage string) {
	s.Trace = append(s.Trace, stage)
}
