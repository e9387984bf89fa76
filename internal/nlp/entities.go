package nlp

// Entity keys form a closed vocabulary. Handlers, the task engine, and any
// replacement predictor all match on these literal strings, so never add or
// rename keys without updating every consumer.
const (
	KeyFilePath          = "file_path"
	KeyDirectoryPath     = "directory_path"
	KeyTime              = "time"
	KeyDate              = "date"
	KeyRelativeTime      = "relative_time"
	KeyScriptName        = "script_name"
	KeyCommand           = "command"
	KeyNumber            = "number"
	KeyMonthDate         = "month_date"
	KeyOperation         = "operation"
	KeyScheduledDatetime = "scheduled_datetime"
	KeyExtractedTime     = "extracted_time"
	KeyExtractedDate     = "extracted_date"
	KeyLocationHint      = "location_hint"
	KeyPriority          = "priority"
	KeyImportance        = "importance"
	KeyExpandedTerm      = "expanded_term"
	KeyInferredFilename  = "inferred_filename"
)

// DatetimeLayout is the wire format for scheduled_datetime values resolved
// from relative time phrases.
const DatetimeLayout = "2006-01-02T15:04:05"
