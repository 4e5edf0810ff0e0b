package tracing

// Span attribute keys for editor tracing. These constants define the
// semantic conventions for span attributes across the command pipeline.
const (
	// Command attributes
	AttrCommandName = "command.name"
	AttrCommandKind = "command.kind"
	AttrCommandArgs = "command.args"

	// Surface attributes
	AttrContentBytes       = "content.bytes"
	AttrSelectionCollapsed = "selection.collapsed"

	// Error attributes
	AttrErrorMessage = "error.message"
)

// Span name prefixes and names for consistent naming.
const (
	SpanPrefixCommand = "command."
	SpanNormalize     = "surface.normalize"
	SpanSanitize      = "surface.sanitize"
	SpanSetContent    = "surface.set_content"
)

// Event names for span events.
const (
	EventHistoryRecorded = "history.recorded"
	EventChangeEmitted   = "change.emitted"
	EventFormatEmitted   = "format.emitted"
	EventRereadScheduled = "reread.scheduled"
)
